package main

import "github.com/oshokin/sshgui-packager/cmd/sshgui-helper/cmd"

func main() {
	cmd.Execute()
}
