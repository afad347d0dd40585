// Package ticket turns a verified registration into a printable PDF ticket.
// The package builds a structured LaTeX document from the stored record and
// hands it to a Renderer for compilation; it never renders unverified
// registrations.
package ticket

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cache2k25/registration-backend/internal/model"
)

// ErrNotVerified is returned when a ticket is requested for a registration
// whose payment has not been verified.  No document is produced.
var ErrNotVerified = errors.New("registration not verified")

// Renderer compiles a named LaTeX source into PDF bytes.  Implementations
// may shell out to a TeX toolchain or embed an engine; callers bound the
// call with ctx.
type Renderer interface {
	Render(ctx context.Context, name string, source []byte) ([]byte, error)
}

// Generate produces the PDF ticket for a registration.  The registration
// must be verified; otherwise ErrNotVerified is returned and the renderer
// is never invoked.
func Generate(ctx context.Context, reg *model.Registration, r Renderer) ([]byte, error) {
	if !reg.Verified {
		return nil, ErrNotVerified
	}
	return r.Render(ctx, "ticket-"+reg.RegistrationID, []byte(BuildDocument(reg)))
}

// BuildDocument renders the LaTeX source of a ticket.  Esports
// registrations list game ids next to participant names; the participation
// kind was fixed at submission time, so the layout of an issued ticket
// never changes retroactively.
func BuildDocument(reg *model.Registration) string {
	var b strings.Builder
	b.WriteString(`\documentclass[a4paper]{article}
\usepackage[margin=1in]{geometry}
\usepackage[T1]{fontenc}
\usepackage{xcolor}

\definecolor{titleblue}{RGB}{0, 123, 255}
\definecolor{headergray}{RGB}{100, 100, 100}

\renewcommand{\familydefault}{\sfdefault}

\begin{document}
\pagestyle{empty}

\begin{center}
    \textbf{\Huge \color{titleblue} CACHE2K25 Event Ticket}
\end{center}

\vspace{20pt}

\begin{center}
`)
	fmt.Fprintf(&b, "    \\Large \\textbf{Registration ID:} %s \\\\\n", escape(reg.RegistrationID))
	b.WriteString("    \\vspace{10pt}\n")
	fmt.Fprintf(&b, "    \\large \\textbf{Event:} %s \\\\\n", escape(reg.EventName))
	b.WriteString(`\end{center}

\section*{Participants}
`)
	fmt.Fprintf(&b, "\\textbf{Primary Participant:} %s \\\\\n", escape(reg.Name))
	if reg.IsEsports() && reg.GameID != nil {
		fmt.Fprintf(&b, "\\textbf{Game ID:} %s \\\\\n", escape(*reg.GameID))
	}

	if len(reg.TeamMembers) > 0 {
		b.WriteString("\n\\vspace{10pt}\n\\textbf{Team Members:}\n\\begin{itemize}\n")
		for _, m := range reg.TeamMembers {
			if reg.IsEsports() {
				gid := "N/A"
				if m.GameID != nil {
					gid = *m.GameID
				}
				fmt.Fprintf(&b, "    \\item %s (Game ID: %s)\n", escape(m.Name), escape(gid))
			} else {
				fmt.Fprintf(&b, "    \\item %s\n", escape(m.Name))
			}
		}
		b.WriteString("\\end{itemize}\n")
	}

	b.WriteString(`
\vspace{20pt}

\begin{center}
    \small \color{headergray} Please present this ticket at the CACHE2K25 help desk on the event day.
\end{center}

\end{document}
`)
	return b.String()
}

var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

// escape neutralizes LaTeX special characters in user-supplied text.
func escape(s string) string { return latexEscaper.Replace(s) }
