package http

import (
	"time"

	"github.com/govern-lab/aegis/pkg/domain/model"
	"github.com/govern-lab/aegis/pkg/domain/types"
	"github.com/govern-lab/aegis/pkg/usecase"
)

// Wire representations of the domain models. The domain structs stay free of
// serialization tags; all JSON shape decisions live here.

type orgAnswersDTO struct {
	Profile        *orgProfileDTO        `json:"profile,omitempty"`
	AIUsage        *orgAIUsageDTO        `json:"aiUsage,omitempty"`
	DataGovernance *orgDataGovernanceDTO `json:"dataGovernance,omitempty"`
	Maturity       *orgMaturityDTO       `json:"maturity,omitempty"`
}

type orgProfileDTO struct {
	Industry string `json:"industry"`
	Size     string `json:"size"`
	Region   string `json:"region"`
}

type orgAIUsageDTO struct {
	UseCases             []string `json:"useCases"`
	BuildsModels         bool     `json:"buildsModels"`
	UsesThirdPartyModels bool     `json:"usesThirdPartyModels"`
}

type orgDataGovernanceDTO struct {
	HandlesPersonalData bool   `json:"handlesPersonalData"`
	Classification      string `json:"classification"`
	RetentionPolicy     bool   `json:"retentionPolicy"`
}

type orgMaturityDTO struct {
	HasAIPolicy         bool `json:"hasAIPolicy"`
	HasIncidentResponse bool `json:"hasIncidentResponse"`
	TrainsStaff         bool `json:"trainsStaff"`
}

func (dto *orgAnswersDTO) toModel() model.OrgAnswers {
	var answers model.OrgAnswers
	if p := dto.Profile; p != nil {
		answers.Profile = &model.OrgProfileAnswers{
			Industry: p.Industry,
			Size:     types.OrgSize(p.Size),
			Region:   p.Region,
		}
	}
	if u := dto.AIUsage; u != nil {
		answers.AIUsage = &model.OrgAIUsageAnswers{
			UseCases:             u.UseCases,
			BuildsModels:         u.BuildsModels,
			UsesThirdPartyModels: u.UsesThirdPartyModels,
		}
	}
	if dg := dto.DataGovernance; dg != nil {
		answers.DataGovernance = &model.OrgDataGovernanceAnswers{
			HandlesPersonalData: dg.HandlesPersonalData,
			Classification:      types.SensitivityLevel(dg.Classification),
			RetentionPolicy:     dg.RetentionPolicy,
		}
	}
	if m := dto.Maturity; m != nil {
		answers.Maturity = &model.OrgMaturityAnswers{
			HasAIPolicy:         m.HasAIPolicy,
			HasIncidentResponse: m.HasIncidentResponse,
			TrainsStaff:         m.TrainsStaff,
		}
	}
	return answers
}

func orgAnswersToDTO(answers model.OrgAnswers) orgAnswersDTO {
	var dto orgAnswersDTO
	if p := answers.Profile; p != nil {
		dto.Profile = &orgProfileDTO{
			Industry: p.Industry,
			Size:     string(p.Size),
			Region:   p.Region,
		}
	}
	if u := answers.AIUsage; u != nil {
		dto.AIUsage = &orgAIUsageDTO{
			UseCases:             u.UseCases,
			BuildsModels:         u.BuildsModels,
			UsesThirdPartyModels: u.UsesThirdPartyModels,
		}
	}
	if dg := answers.DataGovernance; dg != nil {
		dto.DataGovernance = &orgDataGovernanceDTO{
			HandlesPersonalData: dg.HandlesPersonalData,
			Classification:      string(dg.Classification),
			RetentionPolicy:     dg.RetentionPolicy,
		}
	}
	if m := answers.Maturity; m != nil {
		dto.Maturity = &orgMaturityDTO{
			HasAIPolicy:         m.HasAIPolicy,
			HasIncidentResponse: m.HasIncidentResponse,
			TrainsStaff:         m.TrainsStaff,
		}
	}
	return dto
}

type productAnswersDTO struct {
	Overview   *productOverviewDTO   `json:"overview,omitempty"`
	Data       *productDataDTO       `json:"data,omitempty"`
	Autonomy   *productAutonomyDTO   `json:"autonomy,omitempty"`
	Impact     *productImpactDTO     `json:"impact,omitempty"`
	Regulatory *productRegulatoryDTO `json:"regulatory,omitempty"`
}

type productOverviewDTO struct {
	Description string `json:"description"`
	Audience    string `json:"audience"`
}

type productDataDTO struct {
	Sensitivity       string `json:"sensitivity"`
	PersonalData      bool   `json:"personalData"`
	SpecialCategories bool   `json:"specialCategories"`
}

type productAutonomyDTO struct {
	Level          string `json:"level"`
	HumanOversight bool   `json:"humanOversight"`
}

type productImpactDTO struct {
	UserImpact       string `json:"userImpact"`
	VulnerableGroups bool   `json:"vulnerableGroups"`
	LegalEffects     bool   `json:"legalEffects"`
}

type productRegulatoryDTO struct {
	Regimes    []string `json:"regimes"`
	EUHighRisk bool     `json:"euHighRisk"`
}

func (dto *productAnswersDTO) toModel() model.ProductAnswers {
	var answers model.ProductAnswers
	if o := dto.Overview; o != nil {
		answers.Overview = &model.ProductOverviewAnswers{
			Description: o.Description,
			Audience:    types.Audience(o.Audience),
		}
	}
	if d := dto.Data; d != nil {
		answers.Data = &model.ProductDataAnswers{
			Sensitivity:       types.SensitivityLevel(d.Sensitivity),
			PersonalData:      d.PersonalData,
			SpecialCategories: d.SpecialCategories,
		}
	}
	if a := dto.Autonomy; a != nil {
		answers.Autonomy = &model.ProductAutonomyAnswers{
			Level:          types.AutonomyLevel(a.Level),
			HumanOversight: a.HumanOversight,
		}
	}
	if i := dto.Impact; i != nil {
		answers.Impact = &model.ProductImpactAnswers{
			UserImpact:       types.ImpactLevel(i.UserImpact),
			VulnerableGroups: i.VulnerableGroups,
			LegalEffects:     i.LegalEffects,
		}
	}
	if r := dto.Regulatory; r != nil {
		answers.Regulatory = &model.ProductRegulatoryAnswers{
			Regimes:    r.Regimes,
			EUHighRisk: r.EUHighRisk,
		}
	}
	return answers
}

func productAnswersToDTO(answers model.ProductAnswers) productAnswersDTO {
	var dto productAnswersDTO
	if o := answers.Overview; o != nil {
		dto.Overview = &productOverviewDTO{
			Description: o.Description,
			Audience:    string(o.Audience),
		}
	}
	if d := answers.Data; d != nil {
		dto.Data = &productDataDTO{
			Sensitivity:       string(d.Sensitivity),
			PersonalData:      d.PersonalData,
			SpecialCategories: d.SpecialCategories,
		}
	}
	if a := answers.Autonomy; a != nil {
		dto.Autonomy = &productAutonomyDTO{
			Level:          string(a.Level),
			HumanOversight: a.HumanOversight,
		}
	}
	if i := answers.Impact; i != nil {
		dto.Impact = &productImpactDTO{
			UserImpact:       string(i.UserImpact),
			VulnerableGroups: i.VulnerableGroups,
			LegalEffects:     i.LegalEffects,
		}
	}
	if r := answers.Regulatory; r != nil {
		dto.Regulatory = &productRegulatoryDTO{
			Regimes:    r.Regimes,
			EUHighRisk: r.EUHighRisk,
		}
	}
	return dto
}

type orgAssessmentDTO struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Answers   orgAnswersDTO `json:"answers"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

func orgToDTO(org *model.OrgAssessment) orgAssessmentDTO {
	return orgAssessmentDTO{
		ID:        org.ID.String(),
		Name:      org.Name,
		Answers:   orgAnswersToDTO(org.Answers),
		CreatedAt: org.CreatedAt,
		UpdatedAt: org.UpdatedAt,
	}
}

type productAssessmentDTO struct {
	ID        string            `json:"id"`
	OrgID     string            `json:"orgId"`
	Name      string            `json:"name"`
	Answers   productAnswersDTO `json:"answers"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

func productToDTO(product *model.ProductAssessment) productAssessmentDTO {
	return productAssessmentDTO{
		ID:        product.ID.String(),
		OrgID:     product.OrgID.String(),
		Name:      product.Name,
		Answers:   productAnswersToDTO(product.Answers),
		CreatedAt: product.CreatedAt,
		UpdatedAt: product.UpdatedAt,
	}
}

type resultSummaryDTO struct {
	RiskScore  int       `json:"riskScore"`
	RiskTier   string    `json:"riskTier"`
	ComputedAt time.Time `json:"computedAt"`
}

func resultSummaryToDTO(summary *usecase.ResultSummary) *resultSummaryDTO {
	if summary == nil {
		return nil
	}
	return &resultSummaryDTO{
		RiskScore:  summary.RiskScore,
		RiskTier:   summary.RiskTier.String(),
		ComputedAt: summary.ComputedAt,
	}
}

type productOverviewRowDTO struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	CreatedAt time.Time         `json:"createdAt"`
	Result    *resultSummaryDTO `json:"result,omitempty"`
}

type orgOverviewDTO struct {
	ID        string                  `json:"id"`
	Name      string                  `json:"name"`
	CreatedAt time.Time               `json:"createdAt"`
	Result    *resultSummaryDTO       `json:"result,omitempty"`
	Products  []productOverviewRowDTO `json:"products"`
}

func orgOverviewToDTO(ov usecase.OrgOverview) orgOverviewDTO {
	dto := orgOverviewDTO{
		ID:        ov.ID.String(),
		Name:      ov.Name,
		CreatedAt: ov.CreatedAt,
		Result:    resultSummaryToDTO(ov.Result),
		Products:  make([]productOverviewRowDTO, 0, len(ov.Products)),
	}
	for _, p := range ov.Products {
		dto.Products = append(dto.Products, productOverviewRowDTO{
			ID:        p.ID.String(),
			Name:      p.Name,
			CreatedAt: p.CreatedAt,
			Result:    resultSummaryToDTO(p.Result),
		})
	}
	return dto
}

type blueprintSubcategoryDTO struct {
	Code       string   `json:"code"`
	Name       string   `json:"name"`
	Status     string   `json:"status"`
	ControlIDs []string `json:"controlIds"`
}

type blueprintCategoryDTO struct {
	Code          string                    `json:"code"`
	Name          string                    `json:"name"`
	Status        string                    `json:"status"`
	Subcategories []blueprintSubcategoryDTO `json:"subcategories"`
}

type blueprintFunctionDTO struct {
	Code       string                 `json:"code"`
	Name       string                 `json:"name"`
	Status     string                 `json:"status"`
	Categories []blueprintCategoryDTO `json:"categories"`
}

type policyDraftDTO struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

type checklistItemDTO struct {
	ControlID string `json:"controlId"`
	Title     string `json:"title"`
	Done      bool   `json:"done"`
}

type checklistPhaseDTO struct {
	Key   string             `json:"key"`
	Title string             `json:"title"`
	Items []checklistItemDTO `json:"items"`
}

type checklistDTO struct {
	Phases []checklistPhaseDTO `json:"phases"`
}

func (dto *checklistDTO) toModel() model.Checklist {
	checklist := model.Checklist{Phases: make([]model.ChecklistPhase, 0, len(dto.Phases))}
	for _, phase := range dto.Phases {
		p := model.ChecklistPhase{
			Key:   phase.Key,
			Title: phase.Title,
			Items: make([]model.ChecklistItem, 0, len(phase.Items)),
		}
		for _, item := range phase.Items {
			p.Items = append(p.Items, model.ChecklistItem{
				ControlID: types.ControlID(item.ControlID),
				Title:     item.Title,
				Done:      item.Done,
			})
		}
		checklist.Phases = append(checklist.Phases, p)
	}
	return checklist
}

func checklistToDTO(checklist model.Checklist) checklistDTO {
	dto := checklistDTO{Phases: make([]checklistPhaseDTO, 0, len(checklist.Phases))}
	for _, phase := range checklist.Phases {
		p := checklistPhaseDTO{
			Key:   phase.Key,
			Title: phase.Title,
			Items: make([]checklistItemDTO, 0, len(phase.Items)),
		}
		for _, item := range phase.Items {
			p.Items = append(p.Items, checklistItemDTO{
				ControlID: item.ControlID.String(),
				Title:     item.Title,
				Done:      item.Done,
			})
		}
		dto.Phases = append(dto.Phases, p)
	}
	return dto
}

type resultDTO struct {
	EntityType   string                 `json:"entityType"`
	EntityID     string                 `json:"entityId"`
	RiskScore    int                    `json:"riskScore"`
	RiskTier     string                 `json:"riskTier"`
	ControlIDs   []string               `json:"controlIds"`
	Blueprint    []blueprintFunctionDTO `json:"blueprint"`
	PolicyDrafts []policyDraftDTO       `json:"policyDrafts"`
	Checklist    checklistDTO           `json:"checklist"`
	ComputedAt   time.Time              `json:"computedAt"`
}

func resultToDTO(result *model.AssessmentResult) resultDTO {
	dto := resultDTO{
		EntityType:   result.EntityType.String(),
		EntityID:     result.EntityID,
		RiskScore:    result.RiskScore,
		RiskTier:     result.RiskTier.String(),
		ControlIDs:   controlIDStrings(result.ControlIDs),
		Blueprint:    make([]blueprintFunctionDTO, 0, len(result.Blueprint.Functions)),
		PolicyDrafts: make([]policyDraftDTO, 0, len(result.PolicyDrafts)),
		Checklist:    checklistToDTO(result.Checklist),
		ComputedAt:   result.ComputedAt,
	}

	for _, fn := range result.Blueprint.Functions {
		fdto := blueprintFunctionDTO{
			Code:       fn.Code,
			Name:       fn.Name,
			Status:     string(fn.Status),
			Categories: make([]blueprintCategoryDTO, 0, len(fn.Categories)),
		}
		for _, cat := range fn.Categories {
			cdto := blueprintCategoryDTO{
				Code:          cat.Code,
				Name:          cat.Name,
				Status:        string(cat.Status),
				Subcategories: make([]blueprintSubcategoryDTO, 0, len(cat.Subcategories)),
			}
			for _, sub := range cat.Subcategories {
				cdto.Subcategories = append(cdto.Subcategories, blueprintSubcategoryDTO{
					Code:       sub.Code,
					Name:       sub.Name,
					Status:     string(sub.Status),
					ControlIDs: controlIDStrings(sub.ControlIDs),
				})
			}
			fdto.Categories = append(fdto.Categories, cdto)
		}
		dto.Blueprint = append(dto.Blueprint, fdto)
	}

	for _, draft := range result.PolicyDrafts {
		dto.PolicyDrafts = append(dto.PolicyDrafts, policyDraftDTO{
			Key:   draft.Key,
			Title: draft.Title,
			Body:  draft.Body,
		})
	}

	return dto
}

func controlIDStrings(ids []types.ControlID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

type controlDTO struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Scope       string   `json:"scope"`
	Type        string   `json:"type"`
	Level       int      `json:"level"`
	RiskTags    []string `json:"riskTags"`
	Refs        []string `json:"refs"`
}

func controlToDTO(ctrl *model.Control) controlDTO {
	return controlDTO{
		ID:          ctrl.ID.String(),
		Name:        ctrl.Name,
		Description: ctrl.Description,
		Scope:       ctrl.Scope.String(),
		Type:        ctrl.Type.String(),
		Level:       int(ctrl.Level),
		RiskTags:    ctrl.RiskTags,
		Refs:        ctrl.Refs,
	}
}

type taxonomySubcategoryDTO struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type taxonomyCategoryDTO struct {
	Code          string                   `json:"code"`
	Name          string                   `json:"name"`
	Subcategories []taxonomySubcategoryDTO `json:"subcategories"`
}

type taxonomyFunctionDTO struct {
	Code       string                `json:"code"`
	Name       string                `json:"name"`
	Categories []taxonomyCategoryDTO `json:"categories"`
}

func taxonomyToDTO(functions []model.TaxonomyFunction) []taxonomyFunctionDTO {
	out := make([]taxonomyFunctionDTO, 0, len(functions))
	for _, fn := range functions {
		fdto := taxonomyFunctionDTO{
			Code:       fn.Code,
			Name:       fn.Name,
			Categories: make([]taxonomyCategoryDTO, 0, len(fn.Categories)),
		}
		for _, cat := range fn.Categories {
			cdto := taxonomyCategoryDTO{
				Code:          cat.Code,
				Name:          cat.Name,
				Subcategories: make([]taxonomySubcategoryDTO, 0, len(cat.Subcategories)),
			}
			for _, sub := range cat.Subcategories {
				cdto.Subcategories = append(cdto.Subcategories, taxonomySubcategoryDTO{
					Code: sub.Code,
					Name: sub.Name,
				})
			}
			fdto.Categories = append(fdto.Categories, cdto)
		}
		out = append(out, fdto)
	}
	return out
}

type auditEntryDTO struct {
	ID         string    `json:"id"`
	EntityType string    `json:"entityType"`
	EntityID   string    `json:"entityId"`
	Action     string    `json:"action"`
	Actor      string    `json:"actor"`
	CreatedAt  time.Time `json:"createdAt"`
}

func auditEntryToDTO(entry *model.AuditEntry) auditEntryDTO {
	return auditEntryDTO{
		ID:         entry.ID.String(),
		EntityType: entry.EntityType.String(),
		EntityID:   entry.EntityID,
		Action:     entry.Action.String(),
		Actor:      entry.Actor.String(),
		CreatedAt:  entry.CreatedAt,
	}
}
