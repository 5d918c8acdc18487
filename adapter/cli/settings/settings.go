package settings

import (
	"github.com/spf13/cobra"
)

// Cmd is the settings command group
var Cmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage user settings",
	Long:  `View and change preferences such as working hours.`,
}

func init() {
	Cmd.AddCommand(hoursCmd)
}
