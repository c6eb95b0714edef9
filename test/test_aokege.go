package main

import (
	"archive/zip"
	"bytes"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
)

func fileExists(path string) error {
	_, err := os.Stat(path)
	return err
}

func run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}

func must(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func demoZip() []byte {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	w, err := zw.Create("a.txt")
	must(err)
	_, err = w.Write([]byte("hello"))
	must(err)
	_, err = zw.Create("sub/")
	must(err)
	must(zw.Close())
	return buf.Bytes()
}

// Drives the built binary (env AOKEGE_BIN) through the full
// get/extract/remove cycle against a local registry server.
func main() {
	aokege := os.Getenv("AOKEGE_BIN")

	archive := demoZip()
	mux := http.NewServeMux()
	mux.HandleFunc("/zujian/demo/demo.zip", func(w http.ResponseWriter, r *http.Request) {
		w.Write(archive)
	})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	must(err)
	go http.Serve(ln, mux)
	host := "http://" + ln.Addr().String()

	tmp, err := os.MkdirTemp("", "aokege-test-")
	must(err)
	defer os.RemoveAll(tmp)
	base := filepath.Join(tmp, "packages")

	must(run(aokege, "--host", host, "--base", base, "get", "demo"))
	must(fileExists(filepath.Join(base, "demo.zip")))
	must(fileExists(filepath.Join(base, "demo", "a.txt")))
	must(fileExists(filepath.Join(base, "demo", "sub")))

	must(run(aokege, "--base", base, "extract", "demo"))
	must(fileExists(filepath.Join(base, "demo", "a.txt")))

	must(run(aokege, "--base", base, "remove", "demo"))
	if fileExists(filepath.Join(base, "demo")) == nil {
		fmt.Fprintln(os.Stderr, "remove left the install directory behind")
		os.Exit(1)
	}

	// removing again is a normal outcome, not a failure
	must(run(aokege, "--base", base, "remove", "demo"))

	fmt.Println("ALL TESTS PASS")
}
