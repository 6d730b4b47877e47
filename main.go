package main

import "github.com/ecnhealth/clinic_console/cmd"

func main() {
	cmd.Execute()
}
