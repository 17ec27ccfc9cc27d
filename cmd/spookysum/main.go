// Command spookysum prints the SpookyHash digest of files or standard
// input, in the spirit of md5sum/sha256sum.
package main

import (
	goflag "flag"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"k8s.io/klog/v2"

	spooky "github.com/XEonAX/spookyhash"
)

var (
	seed1   uint64
	seed2   uint64
	use64   bool
	decimal bool
)

func init() {
	// klog registers -v, -logtostderr, etc. onto the stdlib flag.CommandLine;
	// fold that set into pflag's before Parse so they actually take effect.
	klog.InitFlags(nil)
	pflag.CommandLine.AddGoFlagSet(goflag.CommandLine)

	pflag.Uint64Var(&seed1, "seed1", 0xDEADBEEFDEADBEEF, "first 64-bit seed")
	pflag.Uint64Var(&seed2, "seed2", 0xDEADBEEFDEADBEEF, "second 64-bit seed")
	pflag.BoolVar(&use64, "64", false, "print only the 64-bit digest (seed1 is used for both halves)")
	pflag.BoolVar(&decimal, "decimal", false, "print digests as decimal instead of hex")
}

func main() {
	pflag.Parse()
	defer klog.Flush()

	args := pflag.Args()
	if len(args) == 0 {
		args = []string{"-"}
	}

	status := 0
	for _, path := range args {
		if err := sumOne(path); err != nil {
			klog.Errorf("%s: %v", path, err)
			status = 1
		}
	}
	os.Exit(status)
}

func sumOne(path string) error {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	s2 := seed2
	if use64 {
		s2 = seed1 // the 64-bit digest is Hash64(data, seed1)
	}
	h := spooky.NewHasher(seed1, s2)
	buf := make([]byte, 64*1024)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if uerr := h.Update(buf[:n]); uerr != nil {
				return uerr
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
	}

	h1, h2 := h.Final()
	fmt.Println(formatDigest(h1, h2, path))
	return nil
}

func formatDigest(h1, h2 uint64, path string) string {
	if use64 {
		if decimal {
			return fmt.Sprintf("%d  %s", h1, path)
		}
		return fmt.Sprintf("%s  %s", hexU64(h1), path)
	}
	if decimal {
		return fmt.Sprintf("%d %d  %s", h1, h2, path)
	}
	return fmt.Sprintf("%s%s  %s", hexU64(h1), hexU64(h2), path)
}

func hexU64(v uint64) string {
	var b [8]byte
	for i := range b {
		b[i] = byte(v >> (56 - 8*i))
	}
	return hex.EncodeToString(b[:])
}
