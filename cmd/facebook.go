package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/nkurelo/socialdash/internal/shared"
)

// FacebookMessages shows the latest messages for a Facebook account.
func (r *Runner) FacebookMessages(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: account id", shared.ErrMissingArgument)
	}

	if err := r.requireSession(ctx); err != nil {
		return err
	}

	messages, err := r.client.FacebookMessages(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch messages: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(messages, true)
	}

	if len(messages) == 0 {
		return r.writePlain("No messages.\n")
	}

	r.writePlainHeader("Recent Messages")
	for _, message := range messages {
		r.writePlain("%s [%s]\n  %s\n", message.Sender(), message.SenderID, message.Text)
	}
	return nil
}

// FacebookSend posts a reply into a conversation.
func (r *Runner) FacebookSend(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: account id", shared.ErrMissingArgument)
	}

	if err := r.requireSession(ctx); err != nil {
		return err
	}

	if err := r.client.FacebookSend(ctx, id, cmd.String("to"), cmd.String("message")); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return r.writePlain("✓ Message sent\n")
}
