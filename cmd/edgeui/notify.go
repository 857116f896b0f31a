package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/edgeui/internal/model"
)

var notifyOpts struct {
	notificationType string
}

var notifyCmd = &cobra.Command{
	Use:   "notify <message>",
	Short: "Broadcast a notification",
	Long: `Broadcast a notification to every listener of this process.

Types: success, error, warning, info.`,
	Args: cobra.MinimumNArgs(1),
	RunE: guarded(runNotify),
}

func init() {
	notifyCmd.Flags().StringVarP(&notifyOpts.notificationType, "type", "t", string(model.TypeInfo),
		"Notification type (success, error, warning, info)")
	rootCmd.AddCommand(notifyCmd)
}

func runNotify(cmd *cobra.Command, args []string) error {
	t, err := model.ParseNotificationType(notifyOpts.notificationType)
	if err != nil {
		return err
	}
	n, err := model.NewNotification(t, strings.Join(args, " "))
	if err != nil {
		return err
	}
	if err := n.Validate(); err != nil {
		return err
	}
	coord.Notify(n)
	return nil
}
