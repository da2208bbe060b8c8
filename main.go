package main

import "github.com/ufdrinsight/ufdrinsight/cmd/ufdrinsight"

func main() {
	cmd.Execute()
}
