package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/nkurelo/socialdash/internal/shared"
)

// ProfileShow prints the authenticated user's profile.
func (r *Runner) ProfileShow(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(ctx); err != nil {
		return err
	}

	profile := r.controller.Profile()
	if cmd.Bool("json") {
		return r.writeJSON(profile, true)
	}

	r.writePlainHeader(profile.DisplayName())
	r.writePlain("Email: %s\n", profile.Email)
	if profile.Picture != "" {
		r.writePlain("Picture: %s\n", profile.Picture)
	}
	return nil
}

// ProfilePicture uploads a new profile picture.
func (r *Runner) ProfilePicture(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: picture path", shared.ErrMissingArgument)
	}

	if err := r.requireSession(ctx); err != nil {
		return err
	}

	profile, err := r.client.UploadPicture(ctx, path)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	return r.writePlain("✓ Picture updated: %s\n", profile.Picture)
}
