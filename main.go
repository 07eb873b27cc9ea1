package main

import "github.com/frahmantamala/company-portal/cmd"

func main() {
	cmd.Execute()
}
