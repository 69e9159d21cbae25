package main

import "paymeet/internal/app/server"

func main() {
	server.Run()
}
