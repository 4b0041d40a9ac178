package scriptrepo

import (
	domain "github.com/omega/animator/internal/biz/script"
	"github.com/omega/animator/internal/infra/persistence/commonrepo"
)

func (po *ScriptPo) ToDomain() *domain.Script {
	return &domain.Script{
		ID:           po.ID,
		CreatedAt:    po.CreatedAt,
		UpdatedAt:    po.UpdatedAt,
		Prompt:       po.Prompt,
		Content:      po.Content,
		Provider:     po.Provider,
		SceneClass:   po.SceneClass,
		Status:       po.Status,
		OutputPath:   po.OutputPath,
		OutputURL:    po.OutputURL,
		ErrorMessage: po.ErrorMessage,
		Attempts:     po.Attempts,
	}
}

func (po *ScriptPo) FromDomain(s *domain.Script) *ScriptPo {
	return &ScriptPo{
		UUIDMode: commonrepo.UUIDMode{
			ID:        s.ID,
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
		},
		Prompt:       s.Prompt,
		Content:      s.Content,
		Provider:     s.Provider,
		SceneClass:   s.SceneClass,
		Status:       s.Status,
		OutputPath:   s.OutputPath,
		OutputURL:    s.OutputURL,
		ErrorMessage: s.ErrorMessage,
		Attempts:     s.Attempts,
	}
}

func patchToMap(input *domain.ScriptPatch) map[string]any {
	var values = make(map[string]any)
	if input.Content != nil {
		values["content"] = *input.Content
	}
	if input.SceneClass != nil {
		values["scene_class"] = *input.SceneClass
	}
	if input.Status != nil {
		values["status"] = *input.Status
	}
	if input.OutputPath != nil {
		values["output_path"] = *input.OutputPath
	}
	if input.OutputURL != nil {
		values["output_url"] = *input.OutputURL
	}
	if input.ErrorMessage != nil {
		values["error_message"] = *input.ErrorMessage
	}
	if input.Attempts != nil {
		values["attempts"] = *input.Attempts
	}
	return values
}
