package main

import (
	"fmt"
	"os"

	"github.com/SwiftBridge/swift-batch-transactions-contract/cmd/swiftbatch"
)

func main() {
	rootCmd := swiftbatch.BuildSwiftBatchCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
