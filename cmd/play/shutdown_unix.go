//go:build !windows

package play

func shutdownCommand() []string {
	return []string{"shutdown", "-h", "now"}
}
