package main

import "github.com/nimeshabuddhika/credit-risk-api/services/risk-cli/internal/cli"

func main() {
	cli.Execute()
}
