package cmd

import (
	"fmt"
	"strings"
)

// commandNames lists the verbs offered by shell completion.
var commandNames = []string{
	"init", "add", "status", "move", "start", "finish", "show",
	"archive", "delete", "edit", "check", "board", "config",
	"completion", "version", "help",
}

// completionCommand prints a completion script for the given shell.
func completionCommand(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("completion: shell is required (bash|zsh|fish|powershell)")
	}
	if len(args) > 1 {
		return fmt.Errorf("unexpected arguments: %v", args[1:])
	}

	words := strings.Join(commandNames, " ")
	switch strings.ToLower(args[0]) {
	case "bash":
		fmt.Printf(bashCompletion, words)
	case "zsh":
		fmt.Printf(zshCompletion, words)
	case "fish":
		fmt.Printf(fishCompletion, words)
	case "powershell", "pwsh":
		fmt.Printf(powershellCompletion, "'"+strings.Join(commandNames, "','")+"'")
	default:
		return fmt.Errorf("completion: unsupported shell %q (expected bash|zsh|fish|powershell)", args[0])
	}
	return nil
}

const bashCompletion = `# pm bash completion
_pm() {
    local cur prev
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    case "$prev" in
        status|move)
            return ;;
    esac
    if [ "$COMP_CWORD" -eq 1 ]; then
        COMPREPLY=($(compgen -W "%s" -- "$cur"))
        return
    fi
    if [ "${COMP_WORDS[1]}" = "status" ] || [ "${COMP_WORDS[1]}" = "move" ]; then
        COMPREPLY=($(compgen -W "todo doing done" -- "$cur"))
    fi
}
complete -F _pm pm
`

const zshCompletion = `#compdef pm
# pm zsh completion
_pm() {
    local -a commands
    commands=(%s)
    if (( CURRENT == 2 )); then
        _describe 'command' commands
    elif [[ ${words[2]} == (status|move) ]] && (( CURRENT == 4 )); then
        _values 'status' todo doing done
    fi
}
compdef _pm pm
`

const fishCompletion = `# pm fish completion
complete -c pm -f
complete -c pm -n '__fish_use_subcommand' -a '%s'
complete -c pm -n '__fish_seen_subcommand_from status move' -a 'todo doing done'
`

const powershellCompletion = `# pm PowerShell completion
Register-ArgumentCompleter -Native -CommandName pm -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)
    @(%s) | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
    }
}
`
