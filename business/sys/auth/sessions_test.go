package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/zaplanje/coin/business/sys/auth"
	"github.com/zaplanje/coin/foundation/logger"
)

func TestRedisSessions(t *testing.T) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	sessions := auth.NewRedisSessions(client)

	t.Log("Given the need to share sessions through redis.")
	{
		ctx := context.Background()

		testID := 0
		t.Logf("\tTest %d:\tWhen a session is added and revoked.", testID)
		{
			if err := sessions.Add(ctx, "sess-1", "user-1", time.Hour); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to add a session : %v", failed, testID, err)
			}

			if got, _ := mr.Get("session:sess-1"); got != "user-1" {
				t.Fatalf("\t%s\tTest %d:\tShould store the user under the session key : got %q", failed, testID, got)
			}
			t.Logf("\t%s\tTest %d:\tShould store the user under the session key.", success, testID)

			if ok, err := sessions.Exists(ctx, "sess-1"); err != nil || !ok {
				t.Fatalf("\t%s\tTest %d:\tShould find the session : %v, %v", failed, testID, ok, err)
			}
			t.Logf("\t%s\tTest %d:\tShould find the session.", success, testID)

			if err := sessions.Revoke(ctx, "sess-1"); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to revoke : %v", failed, testID, err)
			}

			if ok, err := sessions.Exists(ctx, "sess-1"); err != nil || ok {
				t.Fatalf("\t%s\tTest %d:\tShould not find a revoked session : %v, %v", failed, testID, ok, err)
			}
			t.Logf("\t%s\tTest %d:\tShould not find a revoked session.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen the session ttl passes.", testID)
		{
			if err := sessions.Add(ctx, "sess-2", "user-1", time.Minute); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to add a session : %v", failed, testID, err)
			}

			mr.FastForward(2 * time.Minute)

			if ok, err := sessions.Exists(ctx, "sess-2"); err != nil || ok {
				t.Fatalf("\t%s\tTest %d:\tShould expire the session : %v, %v", failed, testID, ok, err)
			}
			t.Logf("\t%s\tTest %d:\tShould expire the session.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen a token is signed out.", testID)
		{
			a, err := auth.New(auth.Config{
				Log:      logger.NewTest(),
				Secret:   "a-secret-for-the-tests",
				Issuer:   "coin test",
				TTL:      time.Hour,
				Sessions: sessions,
			})
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to create an authenticator : %v", failed, testID, err)
			}

			token, claims, err := a.Issue(ctx, "user-2", "ana@zaplanje.rs")
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to issue a token : %v", failed, testID, err)
			}

			if _, err := a.Authenticate(ctx, token); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould accept the live token : %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould accept the live token.", success, testID)

			if err := a.Revoke(ctx, claims); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to revoke the token : %v", failed, testID, err)
			}

			if _, err := a.Authenticate(ctx, token); !auth.IsAuthError(err) {
				t.Fatalf("\t%s\tTest %d:\tShould reject the revoked token : %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould reject the revoked token.", success, testID)
		}
	}
}
