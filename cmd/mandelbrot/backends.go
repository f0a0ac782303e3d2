package main

import (
	"fmt"
	"io"

	"github.com/gogpu/wgpu/hal"
	_ "github.com/gogpu/wgpu/hal/allbackends" // register platform backends
	"github.com/spf13/cobra"

	"github.com/gogpu/mandelbrot/render"
)

func backendsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "List GPU backends and the adapter the viewer would use on each",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			var backends []hal.Backend
			for _, variant := range hal.AvailableBackends() {
				if b, ok := hal.GetBackend(variant); ok {
					backends = append(backends, b)
				}
			}
			return listBackends(cmd.OutOrStdout(), backends)
		},
	}
}

// listBackends opens a device on every backend the way the viewer does and
// reports the selected adapter or the reason it cannot be used.
func listBackends(w io.Writer, backends []hal.Backend) error {
	if len(backends) == 0 {
		_, err := fmt.Fprintln(w, "no GPU backends registered")
		return err
	}
	for _, b := range backends {
		if _, err := fmt.Fprintf(w, "%s: %s\n", b.Variant(), probe(b)); err != nil {
			return err
		}
	}
	return nil
}

func probe(b hal.Backend) string {
	instance, err := b.CreateInstance(&hal.InstanceDescriptor{})
	if err != nil {
		return fmt.Sprintf("unavailable (%v)", err)
	}
	defer instance.Destroy()

	dev, err := render.Open(instance, nil)
	if err != nil {
		return fmt.Sprintf("unusable (%v)", err)
	}
	defer dev.Close()
	return fmt.Sprintf("%s (%s, %s)", dev.Info.Name, dev.Info.Vendor, dev.Info.DeviceType)
}
