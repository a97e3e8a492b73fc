package output

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sofmeright/pipewright/src/pipeline"
)

// JUnit XML types for CI test reporting. One testsuite per job, one
// testcase per execution unit; failures carry the captured tool output.

type JUnitTestSuites struct {
	XMLName  xml.Name         `xml:"testsuites"`
	Name     string           `xml:"name,attr"`
	Tests    int              `xml:"tests,attr"`
	Failures int              `xml:"failures,attr"`
	Time     string           `xml:"time,attr"`
	Suites   []JUnitTestSuite `xml:"testsuite"`
}

type JUnitTestSuite struct {
	Name     string          `xml:"name,attr"`
	Tests    int             `xml:"tests,attr"`
	Failures int             `xml:"failures,attr"`
	Time     string          `xml:"time,attr"`
	Cases    []JUnitTestCase `xml:"testcase"`
}

type JUnitTestCase struct {
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Time      string        `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
}

type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// WriteJUnit renders unit results as JUnit XML.
func WriteJUnit(w io.Writer, results []pipeline.Result) error {
	suites := JUnitTestSuites{Name: "pipewright"}

	var total float64
	byJob := map[string]int{}

	for _, r := range results {
		i, ok := byJob[r.Job]
		if !ok {
			i = len(suites.Suites)
			byJob[r.Job] = i
			suites.Suites = append(suites.Suites, JUnitTestSuite{Name: r.Job})
		}
		suite := &suites.Suites[i]

		name := r.Cell
		if name == "" {
			name = r.Job
		}
		tc := JUnitTestCase{
			Name:      name,
			Classname: r.Job,
			Time:      fmt.Sprintf("%.3f", r.Duration.Seconds()),
		}
		if r.Status == pipeline.StatusFailed {
			tc.Failure = &JUnitFailure{
				Message: fmt.Sprintf("exit code %d", r.ExitCode),
				Type:    "failure",
				Body:    r.Output,
			}
			suite.Failures++
			suites.Failures++
		}
		suite.Tests++
		suites.Tests++
		suite.Cases = append(suite.Cases, tc)

		total += r.Duration.Seconds()
		suite.Time = addSeconds(suite.Time, r.Duration.Seconds())
	}

	suites.Time = fmt.Sprintf("%.3f", total)

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(suites); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// WriteJUnitFile writes the report to path, creating parent directories.
func WriteJUnitFile(path string, results []pipeline.Result) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteJUnit(f, results); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func addSeconds(current string, add float64) string {
	var cur float64
	fmt.Sscanf(current, "%f", &cur)
	return fmt.Sprintf("%.3f", cur+add)
}
