package main

import "questme/cmd/qm/root"

func main() {
	root.Execute()
}
