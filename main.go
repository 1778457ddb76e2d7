// Command coco-mask converts a train/test COCO dataset into numbered JPEG
// images, binary masks and one annotation.json index.
package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/model-collapse/coco-mask/dataset"
)

const (
	flagParentFolder = "parent-folder"
	flagOutputFolder = "output-folder"
)

func newApp(logger *zap.SugaredLogger) *cli.App {
	return &cli.App{
		Name:  "coco-mask",
		Usage: "convert a COCO dataset into images, masks and annotation.json",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     flagParentFolder,
				Required: true,
				Usage:    "parent folder containing the train and test folders",
			},
			&cli.StringFlag{
				Name:     flagOutputFolder,
				Required: true,
				Usage:    "output folder for images, masks and annotation.json",
			},
		},
		Action: func(c *cli.Context) error {
			conv := dataset.NewConverter(c.String(flagParentFolder), c.String(flagOutputFolder), logger)
			idx, err := conv.Run()
			if err != nil {
				return err
			}

			for _, subset := range dataset.Subsets {
				logger.Infof("[%s] converted %d images", subset, len(idx[subset]))
			}
			return nil
		},
	}
}

func main() {
	l, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	logger := l.Sugar()
	defer logger.Sync()

	if err := newApp(logger).Run(os.Args); err != nil {
		logger.Fatal(err)
	}
}
