package driver

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// CloneSparse fetches the external stack's repository into dir using a
// blobless sparse checkout limited to sparsePath. An existing checkout is
// updated with git pull instead.
func (d *Driver) CloneSparse(repoURL, dir, sparsePath, branch string) error {
	if _, err := os.Stat(dir); err == nil {
		return d.runIn(dir, "git", "pull")
	}

	if err := d.run("git", "clone", "--filter=blob:none", "--no-checkout", repoURL, dir); err != nil {
		return err
	}
	if err := d.runIn(dir, "git", "sparse-checkout", "init", "--cone"); err != nil {
		return err
	}
	if err := d.runIn(dir, "git", "sparse-checkout", "set", sparsePath); err != nil {
		return err
	}
	return d.runIn(dir, "git", "checkout", branch)
}

func (d *Driver) runIn(dir, name string, args ...string) error {
	if !d.Quiet {
		fmt.Printf("Running: %s %s (in %s)\n", name, strings.Join(args, " "), dir)
	}
	cmd := d.command(name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", name, args[0], err)
	}
	return nil
}

// CopyEnv copies the stack's env file into the external stack's directory so
// both share the same credentials.
func CopyEnv(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copying env file: %w", err)
	}
	return nil
}

// secretPlaceholder is the stand-in value shipped in the SearXNG base
// settings that must never reach a running instance.
const secretPlaceholder = "ultrasecretkey"

// SeedSecret materializes settings.yml from the base settings file if absent
// and replaces the secret placeholder with 32 random bytes in hex. A file
// already carrying a real secret is left alone.
func SeedSecret(baseFile, settingsFile string) error {
	if _, err := os.Stat(baseFile); err != nil {
		return fmt.Errorf("base settings not found: %w", err)
	}

	if _, err := os.Stat(settingsFile); os.IsNotExist(err) {
		if err := CopyEnv(baseFile, settingsFile); err != nil {
			return err
		}
	}

	data, err := os.ReadFile(settingsFile)
	if err != nil {
		return err
	}
	if !strings.Contains(string(data), secretPlaceholder) {
		return nil
	}

	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return fmt.Errorf("generating secret: %w", err)
	}

	replaced := strings.ReplaceAll(string(data), secretPlaceholder, hex.EncodeToString(key))
	return os.WriteFile(settingsFile, []byte(replaced), 0644)
}
