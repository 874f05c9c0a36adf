package source

import "fmt"

// ShellIntegration returns the key binding script for the named shell.
// The scripts bind Ctrl-T (insert selected file paths), Ctrl-R (search
// command history) and Alt-C (cd into a selected directory).
func ShellIntegration(shell string) (string, error) {
	switch shell {
	case "zsh":
		return zshIntegration, nil
	case "bash":
		return bashIntegration, nil
	case "fish":
		return fishIntegration, nil
	default:
		return "", fmt.Errorf("unsupported shell type: %s", shell)
	}
}

const zshIntegration = `### sift key-bindings.zsh ###
#
# - $SIFT_CTRL_T_COMMAND
# - $SIFT_CTRL_T_OPTS
# - $SIFT_CTRL_R_OPTS
# - $SIFT_ALT_C_COMMAND
# - $SIFT_ALT_C_OPTS

if [[ -o interactive ]]; then

__sift_defaults() {
  echo -E "--height-percentage ${SIFT_HEIGHT:-40} $1"
  echo -E "${SIFT_DEFAULT_OPTS-} $2"
}

# CTRL-T - Paste the selected file path(s) into the command line
__sift_select() {
  setopt localoptions pipefail no_aliases 2> /dev/null
  local item
  ${SIFT_CTRL_T_COMMAND:-command find . -type f 2> /dev/null} |
    sift ${=$(__sift_defaults "" "${SIFT_CTRL_T_OPTS-} -m")} < /dev/tty | while read -r item; do
    echo -n -E "${(q)item} "
  done
  local ret=$?
  echo
  return $ret
}

sift-file-widget() {
  LBUFFER="${LBUFFER}$(__sift_select)"
  local ret=$?
  zle reset-prompt
  return $ret
}
zle     -N            sift-file-widget
bindkey -M emacs '^T' sift-file-widget
bindkey -M vicmd '^T' sift-file-widget
bindkey -M viins '^T' sift-file-widget

# ALT-C - cd into the selected directory
sift-cd-widget() {
  setopt localoptions pipefail no_aliases 2> /dev/null
  local dir="$(
    ${SIFT_ALT_C_COMMAND:-command find . -type d 2> /dev/null} |
      sift ${=$(__sift_defaults "" "${SIFT_ALT_C_OPTS-}")} < /dev/tty)"
  if [[ -z "$dir" ]]; then
    zle redisplay
    return 0
  fi
  zle push-line
  BUFFER="builtin cd -- ${(q)dir:a}"
  zle accept-line
  local ret=$?
  unset dir
  zle reset-prompt
  return $ret
}
zle     -N             sift-cd-widget
bindkey -M emacs '\ec' sift-cd-widget
bindkey -M vicmd '\ec' sift-cd-widget
bindkey -M viins '\ec' sift-cd-widget

# CTRL-R - Paste the selected command from history into the command line
sift-history-widget() {
  local selected
  setopt localoptions noglobsubst noposixbuiltins pipefail no_aliases 2> /dev/null
  selected="$(fc -rl 1 | awk '{ cmd=$0; sub(/^[ \t]*[0-9]+\**[ \t]+/, "", cmd); if (!seen[cmd]++) print cmd }' |
    sift ${=$(__sift_defaults "" "${SIFT_CTRL_R_OPTS-}")} --query "$LBUFFER" < /dev/tty)"
  local ret=$?
  if [ -n "$selected" ]; then
    LBUFFER="$selected"
  fi
  zle reset-prompt
  return $ret
}
zle     -N            sift-history-widget
bindkey -M emacs '^R' sift-history-widget
bindkey -M vicmd '^R' sift-history-widget
bindkey -M viins '^R' sift-history-widget

fi
### end: sift key-bindings.zsh ###`

const bashIntegration = `### sift key-bindings.bash ###
#
# - $SIFT_CTRL_T_COMMAND
# - $SIFT_CTRL_T_OPTS
# - $SIFT_CTRL_R_OPTS
# - $SIFT_ALT_C_COMMAND
# - $SIFT_ALT_C_OPTS

if [[ $- =~ i ]]; then

__sift_defaults() {
  echo "--height-percentage ${SIFT_HEIGHT:-40} $1"
  echo "${SIFT_DEFAULT_OPTS-} $2"
}

__sift_select__() {
  ${SIFT_CTRL_T_COMMAND:-command find . -type f 2> /dev/null} |
    sift $(__sift_defaults "" "${SIFT_CTRL_T_OPTS-} -m") < /dev/tty |
    while read -r item; do
      printf '%q ' "$item"
    done
}

sift-file-widget() {
  local selected="$(__sift_select__ "$@")"
  READLINE_LINE="${READLINE_LINE:0:$READLINE_POINT}$selected${READLINE_LINE:$READLINE_POINT}"
  READLINE_POINT=$(( READLINE_POINT + ${#selected} ))
}

__sift_cd__() {
  local dir
  dir=$(
    ${SIFT_ALT_C_COMMAND:-command find . -type d 2> /dev/null} |
      sift $(__sift_defaults "" "${SIFT_ALT_C_OPTS-}") < /dev/tty
  ) && printf 'builtin cd -- %q' "$(builtin unset CDPATH && builtin cd -- "$dir" && builtin pwd)"
}

__sift_history__() {
  local output
  output=$(
    builtin fc -lnr -2147483648 2> /dev/null | command awk '{ sub(/^[ \t]+/, ""); if (!seen[$0]++) print }' |
      sift $(__sift_defaults "" "${SIFT_CTRL_R_OPTS-}") --query "$READLINE_LINE" < /dev/tty
  ) || return
  READLINE_LINE="$output"
  READLINE_POINT=${#READLINE_LINE}
}

bind -m emacs-standard -x '"\C-t": sift-file-widget'
bind -m vi-command -x '"\C-t": sift-file-widget'
bind -m vi-insert -x '"\C-t": sift-file-widget'

bind -m emacs-standard -x '"\C-r": __sift_history__'
bind -m vi-command -x '"\C-r": __sift_history__'
bind -m vi-insert -x '"\C-r": __sift_history__'

# ALT-C - cd into the selected directory
bind -m emacs-standard '"\ec": " \C-b\C-k \C-u` + "`__sift_cd__`" + `\e\C-e\er\C-m\C-y\C-h\e \C-y\ey\C-x\C-x\C-d"'

fi
### end: sift key-bindings.bash ###`

const fishIntegration = `### sift key-bindings.fish ###
#
# - $SIFT_CTRL_T_COMMAND
# - $SIFT_CTRL_T_OPTS
# - $SIFT_CTRL_R_OPTS
# - $SIFT_ALT_C_COMMAND
# - $SIFT_ALT_C_OPTS

if status is-interactive

function __sift_defaults
  echo "--height-percentage" (test -n "$SIFT_HEIGHT"; and echo $SIFT_HEIGHT; or echo 40) $argv
end

# CTRL-T - Paste the selected file path(s) into the command line
function sift-file-widget
  set -l cmd (test -n "$SIFT_CTRL_T_COMMAND"; and echo $SIFT_CTRL_T_COMMAND; or echo "command find . -type f")
  set -l selected (eval $cmd 2> /dev/null | sift (__sift_defaults $SIFT_CTRL_T_OPTS -m))
  for item in $selected
    commandline -i -- (string escape -- $item)" "
  end
  commandline -f repaint
end

# CTRL-R - Paste the selected command from history into the command line
function __sift_history
  set -l selected (history | sift (__sift_defaults $SIFT_CTRL_R_OPTS) --query (commandline))
  if test -n "$selected"
    commandline -r -- $selected
  end
  commandline -f repaint
end

# ALT-C - cd into the selected directory
function __sift_cd
  set -l cmd (test -n "$SIFT_ALT_C_COMMAND"; and echo $SIFT_ALT_C_COMMAND; or echo "command find . -type d")
  set -l dir (eval $cmd 2> /dev/null | sift (__sift_defaults $SIFT_ALT_C_OPTS))
  if test -n "$dir"
    cd "$dir"
    commandline -f repaint
  end
end

bind \ct sift-file-widget
bind \cr __sift_history
bind \ec __sift_cd

end
### end: sift key-bindings.fish ###`
