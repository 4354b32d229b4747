package main

import (
	"fmt"

	"github.com/fogleman/gg"

	"github.com/countscape/countscape/pca"
)

const (
	plotWidth  = 800
	plotHeight = 600
	plotMargin = 60
	pointR     = 5
)

// One color per label level, cycled if there are more levels than colors.
var palette = [][3]float64{
	{0.86, 0.20, 0.15},
	{0.17, 0.44, 0.76},
	{0.20, 0.63, 0.29},
	{0.98, 0.60, 0.11},
	{0.58, 0.29, 0.63},
	{0.35, 0.35, 0.35},
}

// scatterPNG renders PC1 vs PC2 with one point per sample, colored by the
// sample's label level.
func scatterPNG(path string, result *pca.Result, labels []string) error {
	if len(result.VarExplained) < 2 {
		return fmt.Errorf("scatter plot needs at least 2 components, have %d", len(result.VarExplained))
	}

	xmin, xmax := bounds(result, 0)
	ymin, ymax := bounds(result, 1)

	ctx := gg.NewContext(plotWidth, plotHeight)
	ctx.SetRGB(1, 1, 1)
	ctx.Clear()

	// Frame
	ctx.SetRGB(0.7, 0.7, 0.7)
	ctx.SetLineWidth(1)
	ctx.DrawRectangle(plotMargin, plotMargin, plotWidth-2*plotMargin, plotHeight-2*plotMargin)
	ctx.Stroke()

	// Axis titles with variance explained
	ctx.SetRGB(0, 0, 0)
	ctx.DrawStringAnchored(
		fmt.Sprintf("PC1 (%.1f%%)", 100*result.VarExplained[0]),
		plotWidth/2, plotHeight-plotMargin/2, 0.5, 0.5)
	ctx.DrawStringAnchored(
		fmt.Sprintf("PC2 (%.1f%%)", 100*result.VarExplained[1]),
		plotMargin/2, plotMargin/2, 0.5, 0.5)

	colorOf := levelColors(labels)

	for i := range result.Samples {
		x := scale(result.Projections[i][0], xmin, xmax, plotMargin, plotWidth-plotMargin)
		y := scale(result.Projections[i][1], ymin, ymax, plotHeight-plotMargin, plotMargin)

		c := palette[colorOf[labels[i]]%len(palette)]
		ctx.SetRGB(c[0], c[1], c[2])
		ctx.DrawCircle(x, y, pointR)
		ctx.Fill()

		ctx.SetRGB(0.2, 0.2, 0.2)
		ctx.DrawString(result.Samples[i], x+pointR+2, y+4)
	}

	drawLegend(ctx, labels, colorOf)

	return ctx.SavePNG(path)
}

func bounds(result *pca.Result, component int) (min, max float64) {
	min, max = result.Projections[0][component], result.Projections[0][component]
	for _, p := range result.Projections {
		if p[component] < min {
			min = p[component]
		}
		if p[component] > max {
			max = p[component]
		}
	}
	if min == max {
		// All samples project identically; avoid dividing by zero
		min, max = min-1, max+1
	}
	return min, max
}

func scale(v, vmin, vmax, outMin, outMax float64) float64 {
	return outMin + (v-vmin)/(vmax-vmin)*(outMax-outMin)
}

// levelColors assigns palette indices to label levels in first-seen order.
func levelColors(labels []string) map[string]int {
	out := make(map[string]int)
	for _, label := range labels {
		if _, exists := out[label]; !exists {
			out[label] = len(out)
		}
	}
	return out
}

func drawLegend(ctx *gg.Context, labels []string, colorOf map[string]int) {
	// Legend entries in assignment order
	levels := make([]string, len(colorOf))
	for level, idx := range colorOf {
		levels[idx] = level
	}

	y := float64(plotMargin) + 14
	for _, level := range levels {
		c := palette[colorOf[level]%len(palette)]
		ctx.SetRGB(c[0], c[1], c[2])
		ctx.DrawCircle(plotWidth-plotMargin-90, y-4, pointR)
		ctx.Fill()

		ctx.SetRGB(0, 0, 0)
		ctx.DrawString(level, plotWidth-plotMargin-78, y)
		y += 16
	}
}
