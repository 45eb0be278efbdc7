package main

import (
	"interview-harvest/cmd/harvest/commands"
	"interview-harvest/lib/util/serviceutil"
)

func main() {
	commands.ExecuteContext(serviceutil.SignalContext())
}
