// Command preview serves a converted dataset over HTTP for inspection.
package main

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	http "github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"gocv.io/x/gocv"

	"github.com/model-collapse/coco-mask/dataset"
)

type server struct {
	root   string
	index  dataset.Index
	logger *zap.SugaredLogger
}

func newServer(root string, logger *zap.SugaredLogger) (*server, error) {
	idx, err := dataset.ReadIndex(filepath.Join(root, dataset.IndexFileName))
	if err != nil {
		return nil, errors.Wrap(err, "load index")
	}

	return &server{root: root, index: idx, logger: logger}, nil
}

// lookup resolves the subset and image query args against the index.
func (s *server) lookup(c *http.RequestCtx) (subset, name string, e *dataset.Entry, ok bool) {
	args := c.URI().QueryArgs()
	subset = string(args.Peek("subset"))
	name = string(args.Peek("image"))
	if subset == "" || name == "" {
		c.Error("subset and image are required", http.StatusBadRequest)
		return
	}

	e, ok = s.index[subset][name]
	if !ok {
		c.Error("no such image", http.StatusNotFound)
	}

	return
}

func (s *server) handle(c *http.RequestCtx) {
	s.logger.Debugf("%s %s", c.Method(), c.RequestURI())

	switch string(c.Path()) {
	case "/index":
		data, err := json.Marshal(s.index)
		if err != nil {
			c.Error(err.Error(), http.StatusInternalServerError)
			return
		}
		c.SetContentType("application/json")
		c.Write(data)
	case "/preview":
		subset, name, e, ok := s.lookup(c)
		if !ok {
			return
		}

		img := gocv.IMRead(filepath.Join(s.root, subset, "images", name), gocv.IMReadColor)
		defer img.Close()
		if img.Empty() {
			c.Error("unreadable image", http.StatusInternalServerError)
			return
		}

		if string(c.URI().QueryArgs().Peek("box")) == "true" {
			if err := drawBoundingBoxOnImage(img, e.BBoxList); err != nil {
				c.Error(err.Error(), http.StatusInternalServerError)
				return
			}
		}

		data, err := gocv.IMEncode(gocv.JPEGFileExt, img)
		if err != nil {
			s.logger.Errorf("Err [encode] %v", err)
			c.Error(err.Error(), http.StatusInternalServerError)
			return
		}

		c.SetContentType("image/jpeg")
		c.Write(data)
	case "/mask":
		subset, name, _, ok := s.lookup(c)
		if !ok {
			return
		}

		path := filepath.Join(s.root, subset, "masks", strings.TrimSuffix(name, ".jpg")+"_mask.jpg")
		data, err := os.ReadFile(path)
		if err != nil {
			c.Error(err.Error(), http.StatusInternalServerError)
			return
		}

		c.SetContentType("image/jpeg")
		c.Write(data)
	default:
		c.Error("not found", http.StatusNotFound)
	}
}

func newApp(logger *zap.SugaredLogger) *cli.App {
	return &cli.App{
		Name:  "preview",
		Usage: "serve a converted dataset for inspection",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "load configuration from `FILE`"},
			&cli.StringFlag{Name: "output-folder", Usage: "converted dataset folder, overrides the config"},
			&cli.StringFlag{Name: "addr", Usage: "listen address, overrides the config"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := LoadConfig(c.String("config"))
			if err != nil {
				return err
			}
			if v := c.String("output-folder"); v != "" {
				cfg.OutputFolder = v
			}
			if v := c.String("addr"); v != "" {
				cfg.Addr = v
			}
			if cfg.OutputFolder == "" {
				return errors.New("output folder is not set")
			}

			s, err := newServer(cfg.OutputFolder, logger)
			if err != nil {
				return err
			}

			logger.Infof("Serving %s on %s...", cfg.OutputFolder, cfg.Addr)
			return http.ListenAndServe(cfg.Addr, s.handle)
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
