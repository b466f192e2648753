package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/thelolagemann/sm83/internal/cartridge"
	"github.com/thelolagemann/sm83/internal/gameboy"
	"github.com/thelolagemann/sm83/internal/trace"
	"github.com/thelolagemann/sm83/internal/types"
	"github.com/thelolagemann/sm83/pkg/log"
	"github.com/thelolagemann/sm83/pkg/utils"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "sm83",
		Short:        "Run Game Boy ROM images on an emulated SM83 CPU",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(runCmd(), infoCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	var (
		romFile   string
		steps     uint64
		entry     uint16
		logLevel  string
		traceAddr string
		stateIn   string
		stateOut  string
		debug     bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute a ROM image until it fails, is interrupted or the step limit is reached",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := log.New(logLevel)
			if err != nil {
				return err
			}

			rom, err := utils.LoadFile(romFile)
			if err != nil {
				return err
			}

			opts := []gameboy.Opt{
				gameboy.WithLogger(logger),
				gameboy.WithPostBootState(),
				gameboy.WithEntryPoint(entry),
				gameboy.WithStepLimit(steps),
			}
			if debug {
				opts = append(opts, gameboy.Debug())
			}

			if stateIn != "" {
				b, err := os.ReadFile(stateIn)
				if err != nil {
					return err
				}
				opts = append(opts, gameboy.WithState(b))
			}

			if stateOut != "" {
				f, err := os.Create(stateOut)
				if err != nil {
					return err
				}
				defer f.Close()
				opts = append(opts, gameboy.SaveStateTo(f))
			}

			if traceAddr != "" {
				hub := trace.NewHub(logger)
				srv := &http.Server{Addr: traceAddr, Handler: hub}
				go func() {
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						logger.Errorf("trace: %v", err)
					}
				}()
				defer srv.Close()
				logger.Infof("trace: serving on %s", traceAddr)

				opts = append(opts, gameboy.WithTrace(hub))
			}

			gb, err := gameboy.New(rom, opts...)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			_, runErr := gb.Run(ctx)
			if errors.Is(runErr, context.Canceled) {
				runErr = nil
			}
			if err := gb.Close(); err != nil {
				logger.Errorf("%v", err)
			}

			return runErr
		},
	}

	cmd.Flags().StringVar(&romFile, "rom", "", "ROM image to run (.gb, .gz, .xz, .zip or .7z)")
	cmd.Flags().Uint64Var(&steps, "steps", 0, "Stop after this many steps (0 = no limit)")
	cmd.Flags().Uint16Var(&entry, "entry", types.EntryPoint, "Address execution starts at")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
	cmd.Flags().StringVar(&traceAddr, "trace-addr", "", "Serve executed instructions over websocket on this address")
	cmd.Flags().StringVar(&stateIn, "state-in", "", "Resume from a saved state")
	cmd.Flags().StringVar(&stateOut, "state-out", "", "Save the final state to this file")
	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "Log every executed instruction at trace level")
	cmd.MarkFlagRequired("rom")

	return cmd
}

func infoCmd() *cobra.Command {
	var romFile string

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Print the cartridge header of a ROM image",
		RunE: func(cmd *cobra.Command, args []string) error {
			rom, err := utils.LoadFile(romFile)
			if err != nil {
				return err
			}
			cart, err := cartridge.NewCartridge(rom)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Title:     %s\n", cart.Title)
			fmt.Fprintf(out, "Type:      %s\n", cart.CartridgeType)
			fmt.Fprintf(out, "Licensee:  %s\n", cart.Licensee())
			fmt.Fprintf(out, "ROM size:  %dkB (image %d bytes)\n", cart.ROMSize/1024, len(rom))
			fmt.Fprintf(out, "RAM size:  %dkB\n", cart.RAMSize/1024)
			fmt.Fprintf(out, "Checksum:  0x%02X (valid: %v)\n", cart.HeaderChecksum, cart.ValidChecksum())
			fmt.Fprintf(out, "xxhash:    %016x\n", cart.Fingerprint())
			return nil
		},
	}
	cmd.Flags().StringVar(&romFile, "rom", "", "ROM image to inspect")
	cmd.MarkFlagRequired("rom")

	return cmd
}
