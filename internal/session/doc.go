// Package session implements the interactive shell state machine over a
// vfs.Tree: one working directory, five commands, one log record per command.
//
// Commands:
//   - ls: list the children of the working directory
//   - cd <path>: change directory; "/" and exactly ".." are special
//   - rm <path>: remove a subtree, always resolved from the root
//   - tree [path]: print the subtree depth-first, one indent per level
//   - exit: record exit and flush the session log
//
// Every command, successful or not, is recorded with the literal command
// text and the instant it was invoked. Unknown input is reported but not
// recorded. A panic inside a command is recovered and reported as an error
// so one bad command cannot end the session.
//
// When rm removes the working directory (or one of its ancestors), the
// working directory moves to its nearest surviving ancestor.
package session
