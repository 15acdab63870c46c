package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/calebmrice/regulatory-mirror/internal/diagnostic"
	"github.com/calebmrice/regulatory-mirror/internal/render"
)

// #region shell-cmd
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive diagnostic shell",
	RunE:  runShell,
}

func runShell(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	runner := diagnostic.NewRunner(cfg, st)
	sink := render.Text{}

	fmt.Println("Regulatory mirror shell ready.")
	fmt.Printf("  DB: %s | Organization: %s\n", dbPath, cfg.Organization)
	fmt.Println("Type a directive (or 'quit' to exit):")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}

		res, err := executeAndLog(st, runner, line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		fmt.Println()
		if err := sink.Render(os.Stdout, res); err != nil {
			fmt.Fprintf(os.Stderr, "render error: %v\n", err)
		}
		fmt.Println()
	}
	return scanner.Err()
}
// #endregion shell-cmd
