// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

type Id int

const (
	RecipeNotFoundId Id = iota + 1
	RecipesFileParseErrorId
	ConfigLoadFailedId
	ContainerEngineNotFoundId
	CargoNotFoundId
	PermissionDeniedId
	OptimizerFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty, because we need to have docs about all issue types
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

// Markdown returns the message followed by a "See also" list of links.
func (i *Issue) Markdown() string {
	var sb strings.Builder
	sb.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		sb.WriteString("\n\n## See also:\n")
		for _, link := range append(i.DocLinks(), i.extLinks...) {
			sb.WriteString("- <" + string(link) + ">\n")
		}
	}
	return sb.String()
}

// Render renders the issue with a glamour style name ("auto", "dark",
// "light", "notty") or a path to a JSON style file.
func (i *Issue) Render(stylePath string) (string, error) {
	return render(i.Markdown(), stylePath)
}

var (
	render = glamour.Render

	recipeNotFoundIssue = &Issue{
		id: RecipeNotFoundId,
		mdMsg: `
# Recipe not found!

The recipe you asked for is not in the recipe book.

## Things you can try:
- List all available recipes:
~~~
$ grugjust --list
~~~

- Check for typos, recipe names are matched exactly
- Add the recipe to recipes.cue in your project directory
- Use tab completion:
~~~
$ grugjust <TAB>
~~~`,
		docLinks: []HttpLink{"https://just.systems/man/en/listing-available-recipes.html"},
	}

	recipesFileParseErrorIssue = &Issue{
		id: RecipesFileParseErrorId,
		mdMsg: `
# Failed to parse recipes.cue!

Your recipe file contains syntax errors or does not match the recipe schema.

## Common issues:
- Invalid CUE syntax (missing quotes, braces, etc.)
- Unknown field names
- A recipe name that is not lowercase letters, digits, '-' or '_'
- An 'exec' recipe without 'command' or a 'shell' recipe without 'script'

## Example of valid recipe definitions:
~~~cue
recipes: [
  {
    name:        "fmt"
    description: "Format the workspace"
    kind:        "exec"
    command: ["cargo", "fmt", "--all"]
  },
  {
    name:   "clean-cache"
    kind:   "shell"
    script: "docker volume rm \"$(basename \"$PWD\")_cache\""
  },
]
~~~`,
		docLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The config file could not be read or does not match the configuration schema.

## Things you can try:
- Print the effective configuration:
~~~
$ grugjust config show
~~~

- Write a fresh default configuration:
~~~
$ grugjust config init --force
~~~

- Check GRUGJUST_* environment variables, they override the file`,
		docLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	containerEngineNotFoundIssue = &Issue{
		id: ContainerEngineNotFoundId,
		mdMsg: `
# No container engine found!

The optimize recipe runs the contract optimizer in a container, but neither
Docker nor Podman is available.

## Things you can try:
- Install Docker or Podman and make sure the CLI is in your PATH
- Start the Docker daemon:
~~~
$ sudo systemctl start docker
~~~

- Pick the engine explicitly:
~~~
$ grugjust --engine podman optimize
~~~`,
		docLinks: []HttpLink{
			"https://docs.docker.com/engine/install/",
			"https://podman.io/docs/installation",
		},
	}

	cargoNotFoundIssue = &Issue{
		id: CargoNotFoundId,
		mdMsg: `
# cargo not found!

The install, test and lint recipes run cargo, which is not in your PATH.

## Things you can try:
- Install the Rust toolchain with rustup:
~~~
$ curl --proto '=https' --tlsv1.2 -sSf https://sh.rustup.rs | sh
~~~

- Add ~/.cargo/bin to your PATH
- Install clippy for the lint recipe:
~~~
$ rustup component add clippy
~~~`,
		docLinks: []HttpLink{"https://rustup.rs/"},
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

The container engine refused to run the optimizer.

## Things you can try:
- Add yourself to the docker group and log in again:
~~~
$ sudo usermod -aG docker $USER
~~~

- Use rootless Podman instead:
~~~
$ grugjust --engine podman optimize
~~~`,
		docLinks: []HttpLink{"https://docs.docker.com/engine/install/linux-postinstall/"},
	}

	optimizerFailedIssue = &Issue{
		id: OptimizerFailedId,
		mdMsg: `
# The optimizer failed!

The optimizer container exited with a non-zero status. Its output is shown above.

## Things you can try:
- Make sure the contracts build with cargo first:
~~~
$ grugjust test
~~~

- Drop the project build cache and retry:
~~~
$ docker volume rm "$(basename "$PWD")_cache"
~~~

- On Apple silicon, check that the arm64 optimizer image was selected:
~~~
$ grugjust --dry-run optimize
~~~`,
		docLinks: []HttpLink{"https://docs.docker.com/reference/cli/docker/container/run/"},
	}

	issues = map[Id]*Issue{
		recipeNotFoundIssue.Id():          recipeNotFoundIssue,
		recipesFileParseErrorIssue.Id():   recipesFileParseErrorIssue,
		configLoadFailedIssue.Id():        configLoadFailedIssue,
		containerEngineNotFoundIssue.Id(): containerEngineNotFoundIssue,
		cargoNotFoundIssue.Id():           cargoNotFoundIssue,
		permissionDeniedIssue.Id():        permissionDeniedIssue,
		optimizerFailedIssue.Id():         optimizerFailedIssue,
	}
)

func Get(id Id) *Issue {
	return issues[id]
}
