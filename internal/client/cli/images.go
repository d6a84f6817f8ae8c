package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/pantrykeeper/internal/client/services"
)

func (a *App) ListImages(ctx context.Context) error {
	images, err := a.pantryService.ListImages(ctx)
	if err != nil {
		return err
	}
	if len(images) == 0 {
		fmt.Fprintln(a.out, "No images uploaded")
		return nil
	}

	w := a.table()
	fmt.Fprintln(w, "ID\tFILENAME\tUPLOADED\tSIZE")
	for _, im := range images {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d chars\n",
			im.ID, im.Filename, im.UploadedAt.Local().Format("2006-01-02 15:04"), len(im.Data))
	}
	return w.Flush()
}

// Upload reads the file at args[0] and stores it as an image. At most one
// byte past the size limit is read so oversized files are rejected early.
func (a *App) Upload(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: upload <path>", errUsage)
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, services.MaxImageSize+1))
	if err != nil {
		return err
	}

	img, err := a.pantryService.UploadImage(ctx, filepath.Base(args[0]), data)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Uploaded %s (id %d)\n", img.Filename, img.ID)
	return nil
}

func (a *App) DeleteImage(ctx context.Context, args []string) error {
	id, err := parseID(args, "rmimage")
	if err != nil {
		return err
	}
	if err := a.pantryService.DeleteImage(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted")
	return nil
}
