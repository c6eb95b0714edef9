package main

import (
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	pb "github.com/schollz/progressbar/v3"
)

// A DownloadError is returned when the remote host answers with a
// non-success HTTP status.
type DownloadError struct {
	URL    string
	Code   int
	Status string
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download failed: %s (URL: %s)", e.Status, e.URL)
}

// PackageURL builds the download URL for a package archive:
// <host>/zujian/<package>/<file>.
func PackageURL(host, pkg, file string) string {
	return fmt.Sprintf("%s/zujian/%s/%s", strings.TrimSuffix(host, "/"), pkg, file)
}

func Get(url string) (*http.Response, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}

	proxyClient := &http.Client{Transport: &http.Transport{
		Proxy:           http.ProxyFromEnvironment,
		TLSClientConfig: &tls.Config{InsecureSkipVerify: opts.DisableSSL},
	}}

	return proxyClient.Do(req)
}

// Download the file at 'url' and write the http response body to 'out'. The
// 'getbar' function allows the caller to construct a progress bar given the
// size of the file being downloaded, and the download will write to the
// returned progress bar. If 'url' names a local file it is copied directly.
func Download(url string, out io.Writer, getbar func(size int64) *pb.ProgressBar) error {
	if IsLocalFile(url) {
		f, err := os.Open(url)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(out, f)
		return err
	}

	resp, err := Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &DownloadError{URL: url, Code: resp.StatusCode, Status: resp.Status}
	}

	bar := getbar(resp.ContentLength)
	_, err = io.Copy(io.MultiWriter(out, bar), resp.Body)
	return err
}

// DownloadTo fetches 'url' into the file at 'path', staging the body at
// path+".partial" and renaming it into place only once the download has
// completed, so a failed transfer never leaves a truncated archive under
// the final name.
func DownloadTo(url, path string, getbar func(size int64) *pb.ProgressBar) error {
	tmp := path + ".partial"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := Download(url, f, getbar); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
