// Package paths expands the path specifiers found in a mapping file.
//
// Destinations may start with the home-directory shorthand:
//
//	~          -> $HOME
//	~/.bashrc  -> $HOME/.bashrc
//
// Any other form, including ~user, is returned unchanged. Sources are
// always relative to the repository root and are joined onto it.
//
// # Usage
//
//	home, err := paths.GetHomeDirectory()
//	if err != nil {
//	    return err // fatal: nothing has been touched yet
//	}
//	x := paths.NewExpander(home)
//	dst := x.ExpandDestination("~/.vimrc")        // /home/user/.vimrc
//	src := paths.ExpandSource("vimrc", "/home/user/.dotsync")
package paths
