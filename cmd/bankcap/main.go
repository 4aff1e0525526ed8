package main

import (
	"largestbanks/cmd/bankcap/commands"
	"largestbanks/lib/serviceutil"
)

func main() {
	commands.ExecuteContext(serviceutil.SignalContext())
}
