package main

import "slack-archiver/bot"

func main() {
	bot.Run()
}
