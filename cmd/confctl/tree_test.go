package main

import (
	"strings"
	"testing"
)

func TestTreeCommand(t *testing.T) {
	resetFlags()

	file := writeTemp(t, "httpd.conf", "<VirtualHost *:80>\n    ServerName x\n</VirtualHost>\n")
	output, err := captureOutput(t, func() error {
		return runTree([]string{file})
	})
	if err != nil {
		t.Fatalf("runTree() error = %v", err)
	}
	assertContains(t, output, []string{"VirtualHost", "ServerName = x"})

	// Directives nest one level under their section.
	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, "ServerName") && !strings.HasPrefix(line, "  ") {
			t.Errorf("directive not indented under its section: %q", line)
		}
	}
}

func TestTreeDepthLimit(t *testing.T) {
	resetFlags()
	treeDepth = 1

	file := writeTemp(t, "httpd.conf", "<VirtualHost *:80>\n    ServerName x\n</VirtualHost>\n")
	output, err := captureOutput(t, func() error {
		return runTree([]string{file})
	})
	if err != nil {
		t.Fatalf("runTree() error = %v", err)
	}
	if strings.Contains(output, "ServerName") {
		t.Errorf("depth 1 must hide nested directives: %s", output)
	}
	assertContains(t, output, []string{"VirtualHost"})
}

func TestTreeAttrsAndJSON(t *testing.T) {
	resetFlags()
	treeAttrs = true

	file := writeTemp(t, "httpd.conf", "<VirtualHost *:80>\n    ServerName x\n</VirtualHost>\n")
	output, err := captureOutput(t, func() error {
		return runTree([]string{file})
	})
	if err != nil {
		t.Fatalf("runTree() error = %v", err)
	}
	assertContains(t, output, []string{"[*:80]"})

	resetFlags()
	jsonOut = true
	output, err = captureOutput(t, func() error {
		return runTree([]string{file})
	})
	if err != nil {
		t.Fatalf("runTree() error = %v", err)
	}
	assertJSON(t, output)
	assertContains(t, output, []string{"VirtualHost", "ServerName"})
}

func TestFormatsCommand(t *testing.T) {
	resetFlags()

	output, err := captureOutput(t, func() error {
		return runFormats()
	})
	if err != nil {
		t.Fatalf("runFormats() error = %v", err)
	}
	for _, name := range []string{"apache", "env", "ini", "ini-commented", "json", "plain", "xml"} {
		if !strings.Contains(output, name) {
			t.Errorf("formats output missing %q: %s", name, output)
		}
	}
}
