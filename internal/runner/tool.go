package runner

import "github.com/ytdl-ng/ytdl-web/internal/constants"

// Tool is the external download tool: an executable, the arguments that
// always precede the subcommand, and the directory it runs in.
type Tool struct {
	Command string
	Args    []string
	WorkDir string
}

// DownloadCommand builds "<tool> download <url> -p <profile>".
func (t Tool) DownloadCommand(url, profile string) Command {
	return t.command(constants.SubcommandDownload, url, constants.ProfileFlag, profile)
}

// ProfilesCommand builds "<tool> profiles".
func (t Tool) ProfilesCommand() Command {
	return t.command(constants.SubcommandProfiles)
}

func (t Tool) command(args ...string) Command {
	full := make([]string, 0, len(t.Args)+len(args))
	full = append(full, t.Args...)
	full = append(full, args...)
	return Command{Name: t.Command, Args: full, Dir: t.WorkDir}
}
