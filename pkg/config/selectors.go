package config

import (
	"fmt"
	"reflect"
	"strings"
)

// Selectors locates every control of the event editor. Element entries use
// playwright selector syntax; *Frame entries are glob patterns matched
// against the id attribute of an iframe element.
type Selectors struct {
	EditButton string `yaml:"edit_button" json:"edit_button"`

	ContentFrame string `yaml:"content_frame" json:"content_frame"`
	EditorFrame  string `yaml:"editor_frame" json:"editor_frame"`

	// Event details tab
	DetailsTab      string `yaml:"details_tab" json:"details_tab"`
	ShowRegistrants string `yaml:"show_registrants" json:"show_registrants"`
	MembersOnly     string `yaml:"members_only" json:"members_only"`
	Description     string `yaml:"description" json:"description"`
	HTMLEditButton  string `yaml:"html_edit_button" json:"html_edit_button"`
	HTMLCode        string `yaml:"html_code" json:"html_code"`
	HTMLReadyMarker string `yaml:"html_ready_marker" json:"html_ready_marker"`
	HTMLSave        string `yaml:"html_save" json:"html_save"`
	ExtraInfo       string `yaml:"extra_info" json:"extra_info"`

	// Ticket types & settings tab
	TicketsTab           string `yaml:"tickets_tab" json:"tickets_tab"`
	MultipleRegistration string `yaml:"multiple_registration" json:"multiple_registration"`
	WaitlistEnable       string `yaml:"waitlist_enable" json:"waitlist_enable"`

	// Waitlist & settings tab
	WaitlistTab        string `yaml:"waitlist_tab" json:"waitlist_tab"`
	AutoRegistration   string `yaml:"auto_registration" json:"auto_registration"`
	ContactInformation string `yaml:"contact_information" json:"contact_information"`

	// Emails tab
	EmailsTab            string   `yaml:"emails_tab" json:"emails_tab"`
	EmailToggles         []string `yaml:"email_toggles" json:"email_toggles"`
	SpecificContact      string   `yaml:"specific_contact" json:"specific_contact"`
	ChangeContact        string   `yaml:"change_contact" json:"change_contact"`
	RecipientDialogFrame string   `yaml:"recipient_dialog_frame" json:"recipient_dialog_frame"`
	RecipientReloadFrame string   `yaml:"recipient_reload_frame" json:"recipient_reload_frame"`
	ContactSearch        string   `yaml:"contact_search" json:"contact_search"`
}

func byID(id string) string {
	return "id=" + id
}

// DefaultSelectors returns the layout of the Wild Apricot event editor used
// by PHOC.
func DefaultSelectors() Selectors {
	emailToggles := []string{
		"eventEmails_registrationConfirmedOffline_cbxAttendee",
		"eventEmails_registrationConfirmedOffline_cbxGuest",
		"eventEmails_registrationConfirmedOffline_cbxAdmin",
		"eventEmails_registrationPendingOffline_cbxAttendee",
		"eventEmails_registrationPendingOffline_cbxGuest",
		"eventEmails_registrationPendingOffline_cbxAdmin",
		"eventEmails_registrationCanceled_cbxAttendee",
		"eventEmails_registrationCanceled_cbxGuest",
		"eventEmails_registrationCanceled_cbxAdmin",
		"eventEmails_registrationNewWaitlistEntry_cbxAttendee",
		"eventEmails_registrationNewWaitlistEntry_cbxAdmin",
	}
	for i, id := range emailToggles {
		emailToggles[i] = byID(id)
	}

	return Selectors{
		EditButton: ".btn-group > .btn:nth-child(1)",

		ContentFrame: "contentFrame",
		EditorFrame:  "idEditorIFrame_*",

		DetailsTab:      byID("1-link-id_InnerControl"),
		ShowRegistrants: byID("eventDetailsMain_editAttendeesSettings_showRegistrantsList"),
		MembersOnly:     byID("eventDetailsMain_editAttendeesSettings_visibilityMembers"),
		Description:     byID("idPrimaryContentBlock1Content"),
		HTMLEditButton:  byID("idEditorToolbar_EditorEventDescriptionLocalToolbar_HTML_HTMLEdit"),
		HTMLCode:        byID("idBEditor_EditHTML_Dialog_HTMLCodeContainer"),
		HTMLReadyMarker: "<STRONG>",
		HTMLSave:        byID("idBEditor_EditHTML_Dialog_SaveButton"),
		ExtraInfo:       byID("eventDetailsMain_editExtraEventInfo"),

		TicketsTab:           byID("3-link-id_InnerControl"),
		MultipleRegistration: byID("ctl03_cbMultipleRegistration"),
		WaitlistEnable:       byID("ctl03_waitlistEnableCheckBox"),

		WaitlistTab:        byID("6-link-id_InnerControl"),
		AutoRegistration:   byID("eventWaitlistMain_eventWaitlistRegistrationTypeSelector_rbRegistrationTypeAuto"),
		ContactInformation: byID("eventWaitlistMain_informationToCollectSelector_rbInformationToCollectContactInformation"),

		EmailsTab:            byID("4-link-id_InnerControl"),
		EmailToggles:         emailToggles,
		SpecificContact:      byID("eventEmails_RouteCopySettings_rbtUseSpecificContact"),
		ChangeContact:        byID("eventEmails_RouteCopySettings_lnkChangeContact"),
		RecipientDialogFrame: "idBaseIFrame_SelectRecipientDialog",
		RecipientReloadFrame: "idReloadIFrame_SelectRecipientDialog",
		ContactSearch:        byID("ctl00_innerMainContainer_contactListDisplay_SearchBox"),
	}
}

// Validate reports the first empty selector by its yaml key.
func (s Selectors) Validate() error {
	v := reflect.ValueOf(s)
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		key := strings.Split(t.Field(i).Tag.Get("yaml"), ",")[0]
		field := v.Field(i)

		switch field.Kind() {
		case reflect.String:
			if strings.TrimSpace(field.String()) == "" {
				return fmt.Errorf("selectors.%s is required", key)
			}
		case reflect.Slice:
			if field.Len() == 0 {
				return fmt.Errorf("selectors.%s needs at least one entry", key)
			}
			for j := 0; j < field.Len(); j++ {
				if strings.TrimSpace(field.Index(j).String()) == "" {
					return fmt.Errorf("selectors.%s[%d] is empty", key, j)
				}
			}
		}
	}
	return nil
}
