package cmd

import (
	"errors"
	"fmt"

	"github.com/bnema/sc-console-cli/internal/adapters/render/feed"
	"github.com/bnema/sc-console-cli/internal/application"
	"github.com/bnema/sc-console-cli/internal/domain"
	"github.com/spf13/cobra"
)

var errNotLoggedIn = errors.New("not logged in: run scc login")

func newWatchCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow live task notifications from the backend",
		Long:  "watch opens the backend's event stream and shows a live notification feed. Dropped connections are retried transparently; press q to quit.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile, session, _, err := app.connect(cmd.Context())
			if err != nil {
				return err
			}

			token, ok := session.Token(cmd.Context())
			if !ok {
				return errNotLoggedIn
			}

			snapshots := make(chan application.FeedSnapshot, 1)
			toasts := make(chan domain.Event, 64)

			center := application.NewNotifyCenter(application.DefaultFeedCapacity, func(event domain.Event) {
				select {
				case toasts <- event:
				default:
				}
			})

			unsubscribe := center.Subscribe(func(snapshot application.FeedSnapshot) {
				// Only the latest snapshot matters; stale ones are replaced.
				for {
					select {
					case snapshots <- snapshot:
						return
					default:
						select {
						case <-snapshots:
						default:
						}
					}
				}
			})
			defer unsubscribe()

			eventStream := app.streamFor(profile)
			if err := eventStream.Connect(token, func(event domain.Event) {
				center.Push(event)
			}); err != nil {
				return fmt.Errorf("open event stream: %w", err)
			}
			defer eventStream.Disconnect()

			return feed.Run(center, snapshots, toasts)
		},
	}
}
