package main

import "github.com/oshokin/sshgui-packager/cmd/sshgui-icon/cmd"

func main() {
	cmd.Execute()
}
