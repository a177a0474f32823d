package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/youruser/mockupkit/internal/export"
	imagepkg "github.com/youruser/mockupkit/internal/image"
)

func newComposeCmd(appFn func() *app) *cobra.Command {
	var (
		templateID string
		imageRef   string
		fit        string
		outDir     string
		name       string
	)
	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Place an image into a template and write the PNG",
		Example: `  mockup compose --template mobile-iphone --image screenshot.png
  mockup compose -t web-browser-dark -i https://example.com/shot.jpg --fit contain
  mockup compose -t mobile-android -i qr:https://example.com --out ./mockups`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFn()
			tpl, err := a.registry.Lookup(templateID)
			if err != nil {
				return err
			}
			mode := a.cfg.FitMode()
			if fit != "" {
				if mode, err = imagepkg.ParseFitMode(fit); err != nil {
					return err
				}
			}
			src, err := a.resolver.Resolve(imageRef)
			if err != nil {
				return err
			}

			res, err := a.compositor.Compose(cmd.Context(), imagepkg.Request{Template: tpl, User: src, Fit: mode})
			if err != nil {
				return err
			}

			dir := outDir
			if dir == "" {
				dir = a.cfg.Export.Dir
			}
			p, err := export.Save(dir, name, res)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%dx%d)\n", p, res.Width, res.Height)
			return nil
		},
	}
	cmd.Flags().StringVarP(&templateID, "template", "t", "", "template id")
	cmd.Flags().StringVarP(&imageRef, "image", "i", "", "image file, URL, data: URL or qr:<text>")
	cmd.Flags().StringVar(&fit, "fit", "", "fit mode: cover or contain (default from config)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default from config)")
	cmd.Flags().StringVar(&name, "name", "", "output file name (default mockup-<template>-<millis>.png)")
	_ = cmd.MarkFlagRequired("template")
	_ = cmd.MarkFlagRequired("image")
	return cmd
}
