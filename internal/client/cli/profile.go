package cli

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/VinkoRobi2/CameYa-sub001/internal/client/client"
	"github.com/VinkoRobi2/CameYa-sub001/internal/client/services"
	"github.com/VinkoRobi2/CameYa-sub001/internal/client/session"
)

// maxPhotoSize caps profile photos read from disk.
const maxPhotoSize = 2 << 20

// Complete walks the user through the onboarding form for their account
// type and submits it.
func (a *App) Complete(ctx context.Context) error {
	st := a.store.Snapshot()
	if !st.IsAuthenticated() {
		a.printf("Log in first.\n")
		return services.ErrNotLoggedIn
	}

	var (
		form services.ProfileForm
		err  error
	)
	if st.Session.AccountType == session.Employer {
		form.Employer, err = a.readEmployerProfile()
	} else {
		form.Student, err = a.readStudentProfile()
	}
	if err != nil {
		a.printf("Could not read the form: %s\n", err)
		return err
	}

	updated, err := a.authService.CompleteProfile(ctx, form)
	if err != nil {
		a.printf("Could not save the profile: %s\n", explain(err))
		return err
	}

	if updated.ProfileComplete {
		a.printf("Profile complete.\n")
	} else {
		a.printf("Profile saved. Fill in every field to complete it.\n")
	}
	return nil
}

func (a *App) readStudentProfile() (*client.StudentProfile, error) {
	p := &client.StudentProfile{}

	if err := a.readFields([]field{
		{"Profile title (e.g. Design student)", &p.Title},
		{"Availability (e.g. weekends)", &p.Availability},
	}); err != nil {
		return nil, err
	}

	lists := []struct {
		label string
		dst   *[]string
	}{
		{"Preferred sectors", &p.Sectors},
		{"Skills", &p.Skills},
		{"Links", &p.Links},
	}
	for _, l := range lists {
		v, err := getList(a.reader, l.label, a.out)
		if err != nil {
			return nil, err
		}
		*l.dst = v
	}

	bio, err := getMultiline(a.reader, "Short biography", a.out)
	if err != nil {
		return nil, err
	}
	p.Bio = bio

	photo, mime, err := a.readPhoto()
	if err != nil {
		return nil, err
	}
	p.PhotoBase64, p.PhotoMIME = photo, mime
	return p, nil
}

func (a *App) readEmployerProfile() (*client.EmployerProfile, error) {
	p := &client.EmployerProfile{}

	kind, err := getSimpleText(a.reader, "Are you a (p)erson or a (c)ompany?", a.out)
	if err != nil {
		return nil, err
	}

	var fields []field
	switch strings.ToLower(kind) {
	case "c", "company", client.EmployerCompany:
		p.Kind = client.EmployerCompany
		fields = []field{
			{"Company name", &p.CompanyName},
			{"Website", &p.Website},
			{"LinkedIn", &p.LinkedIn},
			{"WhatsApp", &p.WhatsApp},
		}
	default:
		p.Kind = client.EmployerPerson
		fields = []field{
			{"Headline (e.g. Event organizer)", &p.Headline},
			{"WhatsApp", &p.WhatsApp},
			{"LinkedIn", &p.LinkedIn},
			{"Other link", &p.OtherLink},
		}
	}
	if err := a.readFields(fields); err != nil {
		return nil, err
	}

	if p.Description, err = getMultiline(a.reader, "Description", a.out); err != nil {
		return nil, err
	}

	photo, mime, err := a.readPhoto()
	if err != nil {
		return nil, err
	}
	if photo != "" {
		p.PhotoBase64 = "data:" + mime + ";base64," + photo
	}
	return p, nil
}

// readPhoto asks for an optional image file and returns it base64 encoded
// together with its detected MIME type.
func (a *App) readPhoto() (string, string, error) {
	path, err := getSimpleText(a.reader, "Profile photo file (empty to skip)", a.out)
	if err != nil || path == "" {
		return "", "", err
	}
	return encodePhoto(path)
}

func encodePhoto(path string) (string, string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", "", err
	}
	if info.Size() > maxPhotoSize {
		return "", "", fmt.Errorf("photo is larger than %d bytes", maxPhotoSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", "", fmt.Errorf("%s is not an image (%s)", path, mt.String())
	}
	return base64.StdEncoding.EncodeToString(data), mt.String(), nil
}
