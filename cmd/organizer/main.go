package main

import (
	"os"
	"strings"

	"organizer/internal/cli"
	"organizer/internal/store"
)

// Persistent flags that take a separate value token.
var valueFlags = map[string]bool{
	"--dir":       true,
	"--backend":   true,
	"--format":    true,
	"--log-level": true,
}

func isTaskID(s string) bool {
	s = strings.TrimSpace(s)
	prefix := store.TaskIDPrefix + "-"
	return strings.HasPrefix(s, prefix) && len(s) > len(prefix)
}

// rewriteDirectTaskLookupArgs turns `organizer [flags] <task-id>` into
// `organizer [flags] tasks show <task-id>`. Cobra would otherwise read the id
// as an unknown subcommand.
func rewriteDirectTaskLookupArgs(argv []string) []string {
	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		switch {
		case a == "":
			continue
		case a == "--":
			if i+1 < len(argv) && isTaskID(argv[i+1]) {
				return splice(argv, i+1)
			}
			return argv
		case strings.HasPrefix(a, "-"):
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		case isTaskID(a):
			return splice(argv, i)
		default:
			return argv
		}
	}
	return argv
}

func splice(argv []string, at int) []string {
	out := make([]string, 0, len(argv)+2)
	out = append(out, argv[:at]...)
	out = append(out, "tasks", "show")
	return append(out, argv[at:]...)
}

func main() {
	os.Args = rewriteDirectTaskLookupArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
