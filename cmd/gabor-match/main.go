package main

/*
This command-line tool compares two face images.
It computes the Gabor wavelet transform of both images, extracts a
grid graph of Gabor jets from each, and reports the graph similarity
under a chosen jet similarity measure.
*/

import (
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"path"

	"github.com/jvlmdr/go-gabor/graph"
	"github.com/jvlmdr/go-gabor/gwt"
	"github.com/jvlmdr/go-gabor/jetsim"
)

func init() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, path.Base(os.Args[0]), "[flags] model.png probe.png")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Compares two images by their Gabor graphs.")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Options:")
		flag.PrintDefaults()
		fmt.Fprintln(os.Stderr)
	}
}

func main() {
	var (
		gwtFile   = flag.String("gwt", "", "Wavelet family parameters (JSON), empty for defaults")
		graphFile = flag.String("graph", "", "Node positions (JSON), empty to build a grid")
		simName   = flag.String("sim", "scalar-product", "{scalar-product, canberra, disparity, phase-diff, phase-diff-canberra}")
		firstStr  = flag.String("first", "10,10", "First grid node (x,y)")
		lastStr   = flag.String("last", "90,90", "Last grid node (x,y)")
		stepStr   = flag.String("step", "10,10", "Grid step (x,y)")
		width     = flag.Int("width", 0, "Scale images to this width before the transform (0 to disable)")
	)
	flag.Parse()
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}

	trafo, err := loadTransform(*gwtFile)
	if err != nil {
		log.Fatalln("load transform:", err)
	}
	machine, err := loadMachine(*graphFile, *firstStr, *lastStr, *stepStr)
	if err != nil {
		log.Fatalln("load graph machine:", err)
	}
	typ, err := jetsim.ParseType(*simName)
	if err != nil {
		log.Fatal(err)
	}
	sim, err := jetsim.New(typ, trafo)
	if err != nil {
		log.Fatal(err)
	}

	var graphs [2][]*gwt.Jet
	for i, fname := range flag.Args() {
		im, err := loadImage(fname)
		if err != nil {
			log.Fatalf("load image %s: %v", fname, err)
		}
		if *width > 0 {
			im = resizeWidth(im, *width)
		}
		jets, err := trafo.JetImage(gwt.FromImage(im), true)
		if err != nil {
			log.Fatalf("transform %s: %v", fname, err)
		}
		g, err := machine.Extract(jets)
		if err != nil {
			log.Fatalf("extract graph from %s: %v", fname, err)
		}
		graphs[i] = g
	}

	score, err := machine.Similarity(graphs[0], graphs[1], sim)
	if err != nil {
		log.Fatalln("compare graphs:", err)
	}
	fmt.Println(score)
}

func loadTransform(fname string) (*gwt.Transform, error) {
	if fname == "" {
		return gwt.New(gwt.DefaultParams())
	}
	return gwt.Load(fname)
}

func loadMachine(fname, first, last, step string) (*graph.Machine, error) {
	if fname != "" {
		return graph.Load(fname)
	}
	var pts [3]image.Point
	for i, s := range []string{first, last, step} {
		p, err := parsePoint(s)
		if err != nil {
			return nil, err
		}
		pts[i] = p
	}
	return graph.NewGrid(pts[0], pts[1], pts[2])
}

func parsePoint(s string) (image.Point, error) {
	var p image.Point
	if _, err := fmt.Sscanf(s, "%d,%d", &p.X, &p.Y); err != nil {
		return image.ZP, fmt.Errorf(`point not in form "x,y": %q`, s)
	}
	return p, nil
}
