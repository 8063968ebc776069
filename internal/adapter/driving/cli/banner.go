package cli

import (
	"fmt"

	"github.com/fatih/color"
)

// displayWelcomeBanner shows the welcome banner with version information.
func displayWelcomeBanner(versionStr string) {
	banner := `
     _____       _             _____           _       _     _
    / ____|     | |           |_   _|         (_)     | |   | |
   | (___   __ _| | ___  ___    | |  _ __  ___ _  __ _| |__ | |_ ___
    \___ \ / _' | |/ _ \/ __|   | | | '_ \/ __| |/ _' | '_ \| __/ __|
    ____) | (_| | |  __/\__ \  _| |_| | | \__ \ | (_| | | | | |_\__ \
   |_____/ \__,_|_|\___||___/ |_____|_| |_|___/_|\__, |_| |_|\__|___/
                                                  __/ |
                                                 |___/
	`
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(red(banner))
	fmt.Println(blue(fmt.Sprintf("Sales Insights CLI (v%s)", versionStr)))
}
