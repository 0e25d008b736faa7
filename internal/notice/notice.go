package notice

import (
	"net/url"

	"github.com/frahmantamala/office-management/internal"
	"github.com/frahmantamala/office-management/internal/core/common/validation"
	noticeDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/notice"
	"github.com/frahmantamala/office-management/internal/crud"
	"github.com/frahmantamala/office-management/internal/store"
)

type Notice = noticeDatamodel.Notice

func Resource() crud.Resource[Notice] {
	return crud.Resource[Notice]{
		Name: "notices",
		Filter: func(params url.Values) *store.Query {
			return store.NewQuery().
				EqIf("audience", params.Get("audience")).
				EqIf("priority", params.Get("priority")).
				EqIf("posted_by_email", params.Get("postedByEmail")).
				Desc("created_at")
		},
		Prepare: func(n *Notice) error {
			v := validation.NewValidator()
			v.Field("title", n.Title).Required()
			v.Field("content", n.Content).Required()
			if err := v.ValidateAs(internal.ErrRequiredFields); err != nil {
				return err
			}
			return nil
		},
		NotFound: internal.ErrNoticeNotFound,
	}
}
