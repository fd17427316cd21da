package offers

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"strings"
	"time"

	"reisegruppen/models"
	"reisegruppen/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/rs/zerolog/log"
	"github.com/skip2/go-qrcode"
)

const msgBrochureFailed = "Fehler beim Erstellen der Broschüre"

const (
	photoTimeout  = 5 * time.Second
	maxPhotoBytes = 5 << 20
)

// Brochure renders a printable PDF of one offer with a QR code pointing back to it.
func (h *Handler) Brochure(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	o, err := h.store.Get(ctx, ps.ByName("id"))
	if err != nil {
		h.fail(w, r, msgGetFailed, err)
		return
	}

	var photo image.Image
	if u := mainImageURL(o); u != "" {
		photo, err = fetchPhoto(r.Context(), h.photos, u)
		if err != nil {
			// the brochure is still useful without its photo
			log.Warn().Err(err).Str("offer_id", o.ID.Hex()).Str("url", u).Msg("brochure photo unavailable")
		}
	}

	pdf, err := RenderBrochure(o, offerLink(r, o.ID.Hex()), photo)
	if err != nil {
		h.fail(w, r, msgBrochureFailed, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=angebot-"+o.ID.Hex()+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

// RenderBrochure lays out an A4 page for o. link is encoded as a QR code and
// photo, when not nil, is placed below the header.
func RenderBrochure(o models.TravelOffer, link string, photo image.Image) ([]byte, error) {
	qrPNG, err := qrcode.Encode(link, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(o.Title), false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.MultiCell(140, 9, tr(o.Title), "", "L", false)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, tr(fmt.Sprintf("%s, %s (%s)", o.City, o.Country, o.Category)))
	pdf.Ln(8)
	pdf.Cell(0, 8, tr(strings.Repeat("*", o.Stars)))
	pdf.Ln(12)

	if photo != nil {
		var jpg bytes.Buffer
		if err := imaging.Encode(&jpg, photo, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
			return nil, fmt.Errorf("encode photo: %w", err)
		}
		photoOpts := gofpdf.ImageOptions{ImageType: "JPG"}
		pdf.RegisterImageOptionsReader("photo", photoOpts, &jpg)
		pdf.ImageOptions("photo", pdf.GetX(), pdf.GetY(), 120, 0, true, photoOpts, 0, "")
		pdf.Ln(6)
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, tr(fmt.Sprintf("ab %.2f EUR pro Person", o.PricePerPerson)))
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	if o.PricePerNight != nil {
		pdf.Cell(0, 7, tr(fmt.Sprintf("%.2f EUR pro Nacht", *o.PricePerNight)))
		pdf.Ln(7)
	}
	pdf.Cell(0, 7, tr(fmt.Sprintf("%d bis %d Personen", o.MinPersons, o.MaxPersons)))
	pdf.Ln(7)
	pdf.Cell(0, 7, tr(fmt.Sprintf("Check-in %s, Check-out %s", o.CheckInTime, o.CheckOutTime)))
	pdf.Ln(7)
	pdf.Cell(0, 7, tr("Stornierung: "+o.CancellationPolicy))
	pdf.Ln(12)

	pdf.MultiCell(0, 6, tr(o.Description), "", "L", false)
	if len(o.Amenities) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(0, 7, tr("Ausstattung"))
		pdf.Ln(7)
		pdf.SetFont("Arial", "", 11)
		pdf.MultiCell(0, 6, tr(strings.Join(o.Amenities, ", ")), "", "L", false)
	}

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 160, 12, 36, 36, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// mainImageURL prefers the image flagged as main and falls back to the first one.
func mainImageURL(o models.TravelOffer) string {
	for _, img := range o.Images {
		if img.IsMain {
			return img.URL
		}
	}
	if len(o.Images) > 0 {
		return o.Images[0].URL
	}
	return ""
}

// fetchPhoto downloads and decodes a remote image and fits it into 800x500.
func fetchPhoto(ctx context.Context, client *http.Client, url string) (image.Image, error) {
	if !utils.IsHTTPURL(url) {
		return nil, fmt.Errorf("not an http url: %q", url)
	}
	ctx, cancel := context.WithTimeout(ctx, photoTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch photo: status %d", resp.StatusCode)
	}

	img, err := imaging.Decode(io.LimitReader(resp.Body, maxPhotoBytes), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode photo: %w", err)
	}
	return imaging.Fit(img, 800, 500, imaging.Lanczos), nil
}

func offerLink(r *http.Request, id string) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if p := r.Header.Get("X-Forwarded-Proto"); p == "http" || p == "https" {
		scheme = p
	}
	return scheme + "://" + r.Host + "/api/travel-offers/" + id
}
