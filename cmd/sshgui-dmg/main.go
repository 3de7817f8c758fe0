package main

import "github.com/oshokin/sshgui-packager/cmd/sshgui-dmg/cmd"

func main() {
	cmd.Execute()
}
