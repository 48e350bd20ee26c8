package main

import "github.com/Ajaysubramanyam16/Habit-tracker/cmd/lum/root"

func main() {
	root.Execute()
}
