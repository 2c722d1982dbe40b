package cmd

import (
	"errors"
	"testing"
	"time"
)

func TestMinePoll(t *testing.T) {
	defer func(p time.Duration) { poll = p }(poll)

	t.Log("Given the need to follow a mining run.")
	{
		for testID, p := range []time.Duration{0, -time.Second} {
			t.Logf("\tTest %d:\tWhen the poll interval is %v.", testID, p)
			{
				poll = p

				if err := mineCmd.RunE(mineCmd, nil); !errors.Is(err, ErrInvalidPoll) {
					t.Fatalf("\t%s\tTest %d:\tShould reject the interval : got %v", failed, testID, err)
				}
				t.Logf("\t%s\tTest %d:\tShould reject the interval.", success, testID)
			}
		}
	}
}
