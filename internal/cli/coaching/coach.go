package coaching

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"github.com/julianstephens/habitlog/internal/cli"
	"github.com/julianstephens/habitlog/internal/constants"
)

type CoachCmd struct {
	Question []string `arg:"" optional:"" help:"Question for the coach. Omit for a weekly summary with tips."`
}

func (c *CoachCmd) Run(ctx *cli.Context) error {
	habits := ctx.Habits()
	query := strings.TrimSpace(strings.Join(c.Question, " "))

	if len(habits) == 0 && query == "" {
		ctx.Println(constants.CoachNoHabitsMessage)
		return nil
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	reply := ctx.NewCoach().Ask(sigCtx, habits, query)
	ctx.Println(reply)
	return nil
}
