package main

import "github.com/Aashish23092/payslip-filler/cmd"

func main() {
	cmd.Execute()
}
