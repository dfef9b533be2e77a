package play

func shutdownCommand() []string {
	return []string{"shutdown", "/s", "/t", "0"}
}
