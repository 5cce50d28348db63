// Command topicradar researches trending personal-finance and AI topics
// and serves the ranked results over HTTP, a terminal UI or plain output.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
