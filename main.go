package main

import "github.com/frahmantamala/topup-commerce/cmd"

func main() {
	cmd.Execute()
}
