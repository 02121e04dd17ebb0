package core

import (
	"context"
	"fmt"
)

// Responder answers the commands of a Flow on behalf of a participant.
type Responder interface {
	Respond(ctx context.Context, cmd Command) (Response, error)
}

// ResponderFunc adapts a function to Responder.
type ResponderFunc func(ctx context.Context, cmd Command) (Response, error)

// Respond calls fn.
func (fn ResponderFunc) Respond(ctx context.Context, cmd Command) (Response, error) {
	return fn(ctx, cmd)
}

// Run drives f to completion, passing every command to r and feeding its
// answer back. It returns nil once the flow has emitted its end page.
func Run(ctx context.Context, f *Flow, r Responder) error {
	var resp Response
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		cmd, ok := f.Next(resp)
		if !ok {
			return nil
		}

		var err error
		resp, err = r.Respond(ctx, cmd)
		if err != nil {
			return fmt.Errorf("respond to %s: %w", cmd.Kind(), err)
		}
	}
}
