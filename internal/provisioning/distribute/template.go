package distribute

import (
	"fmt"
	"path"
	"strings"

	"al.essio.dev/pkg/shellescape"
)

// configFile is the node configuration file inside the unpacked release.
const configFile = "conf/cassandra.yaml"

// Placeholders shipped in the stock configuration file.
const (
	defaultClusterName = "Test Cluster"
	defaultBindAddress = "localhost"
	defaultSeeds       = `seeds: "127.0.0.1"`
)

// TemplateCommand returns the shell command that unpacks the archive in the
// remote home directory and rewrites cluster name, bind address and seed
// list in the configuration file. Every interpolated value is quoted for
// the shell and escaped for sed.
func TemplateCommand(artifactName, unpackedDir, clusterName, bindAddress string, seeds []string) string {
	conf := shellescape.Quote(path.Join(unpackedDir, configFile))
	seedLine := fmt.Sprintf(`seeds: "%s"`, strings.Join(seeds, ","))

	parts := []string{
		"tar -zxf " + shellescape.Quote(artifactName),
		sedCommand(defaultClusterName, clusterName, conf),
		sedCommand(defaultBindAddress, bindAddress, conf),
		sedCommand(defaultSeeds, seedLine, conf),
	}
	return strings.Join(parts, " && ")
}

// sedCommand builds an in-place global substitution of the literal old with
// the literal replacement.
func sedCommand(old, replacement, quotedFile string) string {
	expr := fmt.Sprintf("s/%s/%s/g", escapePattern(old), escapeReplacement(replacement))
	return fmt.Sprintf("sed -i -e %s %s", shellescape.Quote(expr), quotedFile)
}

var patternEscaper = strings.NewReplacer(
	`\`, `\\`, `/`, `\/`, `.`, `\.`, `*`, `\*`,
	`[`, `\[`, `]`, `\]`, `^`, `\^`, `$`, `\$`,
)

var replacementEscaper = strings.NewReplacer(`\`, `\\`, `/`, `\/`, `&`, `\&`, "\n", `\n`)

func escapePattern(s string) string {
	return patternEscaper.Replace(s)
}

func escapeReplacement(s string) string {
	return replacementEscaper.Replace(s)
}
