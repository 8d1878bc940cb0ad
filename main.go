package main

import (
	_ "time/tzdata"

	"github.com/writewithwrabit/journal/cmd"
)

func main() {
	cmd.Execute()
}
