// Package rewrite post-processes imported markdown so links resolve on the
// destination site instead of inside the source repository.
//
// All transforms are pure string-to-string functions over whole file
// contents, driven by the inline-link syntax `[text](url)`. Running a
// transform twice is safe: already-absolute links pass through unchanged.
package rewrite

import (
	"regexp"
	"strings"
)

// linkPattern matches markdown inline links: [text](url).
var linkPattern = regexp.MustCompile(`\[([^\]]*)\]\(([^)]*)\)`)

// leadingHeadingPattern matches one leading H1 line, or one leading blank
// line. The optional group is intentional: a blank first line is stripped
// too, matching long-standing behavior downstream pages rely on.
var leadingHeadingPattern = regexp.MustCompile(`^(# .*)?\n`)

// AbsolutizeLinks rewrites relative links to absolute links under the source
// repository's browsable tree. remotePrefix is the repository's tree URL
// base (e.g. github.com/kubernetes/kubernetes/tree/master); subPath is the
// source file's directory relative to the repository root.
//
// Links that are already absolute (https://), mail links, and pure anchors
// are left untouched. Repo-absolute links (leading /) resolve against
// remotePrefix alone; everything else resolves against remotePrefix/subPath.
func AbsolutizeLinks(content, remotePrefix, subPath string) string {
	return linkPattern.ReplaceAllStringFunc(content, func(match string) string {
		parts := linkPattern.FindStringSubmatch(match)
		text, target := parts[1], parts[2]

		if strings.HasPrefix(target, "https://") ||
			strings.HasPrefix(target, "mailto:") ||
			strings.HasPrefix(target, "#") {
			return match
		}

		if strings.HasPrefix(target, "/") {
			target = remotePrefix + "/" + target[1:]
		} else if subPath == "" || subPath == "." {
			target = remotePrefix + "/" + target
		} else {
			target = strings.Join([]string{remotePrefix, subPath, target}, "/")
		}
		return "[" + text + "](" + target + ")"
	})
}

// StripLeadingHeading drops exactly one leading `# ...` heading line (or one
// leading blank line) from content. Imported pages carry their own H1 which
// duplicates the title the site renders.
func StripLeadingHeading(content string) string {
	return leadingHeadingPattern.ReplaceAllString(content, "")
}

const kubectlCommandsBase = "/docs/reference/generated/kubectl/kubectl-commands"

// RewriteKubectlLinks rewrites the See Also cross-references of the
// generated kubectl page. A link like [kubectl annotate](kubectl_annotate.md)
// becomes [kubectl annotate](/docs/reference/generated/kubectl/kubectl-commands#annotate).
// Links not matching both the URL shape and the "kubectl " text prefix are
// left unchanged.
func RewriteKubectlLinks(content string) string {
	return linkPattern.ReplaceAllStringFunc(content, func(match string) string {
		parts := linkPattern.FindStringSubmatch(match)
		text, target := parts[1], parts[2]

		if !strings.HasSuffix(target, ".md") || !strings.HasPrefix(target, "kubectl") {
			return match
		}
		subcommand, ok := strings.CutPrefix(text, "kubectl ")
		if !ok {
			return match
		}
		return "[" + text + "](" + kubectlCommandsBase + "#" + subcommand + ")"
	})
}
