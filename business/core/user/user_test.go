package user_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/zaplanje/coin/business/core/stats"
	"github.com/zaplanje/coin/business/core/stats/stores/statsmem"
	"github.com/zaplanje/coin/business/core/user"
	"github.com/zaplanje/coin/business/core/user/stores/usermem"
	"github.com/zaplanje/coin/business/sys/broker"
	"github.com/zaplanje/coin/foundation/events"
	"github.com/zaplanje/coin/foundation/logger"
	"golang.org/x/crypto/bcrypt"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func newCore(maxUsers int) (*user.Core, *stats.Core) {
	log := logger.NewTest()
	statsCore := stats.NewCore(log, statsmem.NewStore(), events.New(), broker.Nop{})

	usrCore := user.NewCore(user.Config{
		Log:      log,
		Storer:   usermem.NewStore(),
		Counter:  statsCore,
		MaxUsers: maxUsers,
		Cost:     bcrypt.MinCost,
	})

	return usrCore, statsCore
}

func TestUser(t *testing.T) {
	t.Log("Given the need to work with user records.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen handling a single user.", testID)
		{
			ctx := context.Background()
			core, statsCore := newCore(0)

			nu := user.NewUser{
				Email:    " Marko@Zaplanje.rs ",
				Password: "gophers",
			}

			usr, err := core.Create(ctx, nu)
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to create user : %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould be able to create user.", success, testID)

			if usr.Email != "marko@zaplanje.rs" {
				t.Fatalf("\t%s\tTest %d:\tShould normalize the email : got %q", failed, testID, usr.Email)
			}
			t.Logf("\t%s\tTest %d:\tShould normalize the email.", success, testID)

			if total, _ := statsCore.TotalUsers(ctx); total != 1 {
				t.Fatalf("\t%s\tTest %d:\tShould count the new member : got %d", failed, testID, total)
			}
			t.Logf("\t%s\tTest %d:\tShould count the new member.", success, testID)

			if _, err := core.Create(ctx, nu); !errors.Is(err, user.ErrUniqueEmail) {
				t.Fatalf("\t%s\tTest %d:\tShould reject a duplicate email : %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould reject a duplicate email.", success, testID)

			if _, err := core.Authenticate(ctx, "marko@zaplanje.rs", "gophers"); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to authenticate : %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould be able to authenticate.", success, testID)

			if _, err := core.Authenticate(ctx, "marko@zaplanje.rs", "wrong!"); !errors.Is(err, user.ErrAuthenticationFailure) {
				t.Fatalf("\t%s\tTest %d:\tShould reject a wrong password : %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould reject a wrong password.", success, testID)

			up := user.UpdatePassword{Password: "rakija1", PasswordConfirm: "rakija2"}
			if err := core.UpdatePassword(ctx, usr.ID, up); !errors.Is(err, user.ErrPasswordMismatch) {
				t.Fatalf("\t%s\tTest %d:\tShould reject mismatched passwords : %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould reject mismatched passwords.", success, testID)

			up = user.UpdatePassword{Password: "med", PasswordConfirm: "med"}
			if err := core.UpdatePassword(ctx, usr.ID, up); !errors.Is(err, user.ErrPasswordTooShort) {
				t.Fatalf("\t%s\tTest %d:\tShould reject a short password : %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould reject a short password.", success, testID)

			up = user.UpdatePassword{Password: "rakija1", PasswordConfirm: "rakija1"}
			if err := core.UpdatePassword(ctx, usr.ID, up); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to change the password : %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould be able to change the password.", success, testID)

			if _, err := core.Authenticate(ctx, "marko@zaplanje.rs", "rakija1"); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould authenticate with the new password : %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould authenticate with the new password.", success, testID)
		}
	}
}

func TestCommunityFull(t *testing.T) {
	t.Log("Given the need to limit the size of the community.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen the member limit is reached.", testID)
		{
			ctx := context.Background()
			core, _ := newCore(2)

			for i := range 2 {
				nu := user.NewUser{Email: fmt.Sprintf("member%d@zaplanje.rs", i), Password: "gophers"}
				if _, err := core.Create(ctx, nu); err != nil {
					t.Fatalf("\t%s\tTest %d:\tShould be able to create member %d : %v", failed, testID, i, err)
				}
			}
			t.Logf("\t%s\tTest %d:\tShould be able to create members up to the limit.", success, testID)

			nu := user.NewUser{Email: "late@zaplanje.rs", Password: "gophers"}
			if _, err := core.Create(ctx, nu); !errors.Is(err, user.ErrCommunityFull) {
				t.Fatalf("\t%s\tTest %d:\tShould reject members over the limit : %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould reject members over the limit.", success, testID)
		}
	}
}
