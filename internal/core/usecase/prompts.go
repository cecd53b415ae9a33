package usecase

import (
	"fmt"
	"strings"

	"github.com/medkoval/health-companion/internal/core/domain"
)

const classificationPrompt = `Analyze this medical document and categorize it into ONE of these types:
1. PRESCRIPTION - Contains medication names, dosages, doctor's signature
2. LAB_REPORT - Contains test results, lab values, pathology findings
3. MEDICAL_IMAGE - X-ray, MRI, CT scan, ultrasound, or other diagnostic imaging
4. UNKNOWN - Cannot determine or doesn't fit above categories

Respond with ONLY the category name (PRESCRIPTION, LAB_REPORT, MEDICAL_IMAGE, or UNKNOWN).`

const classificationSystemPrompt = "You are a medical document classifier. Respond only with the category name."

const prescriptionPrompt = `Analyze this prescription and explain:
1. Medications prescribed (names and purposes)
2. Dosage instructions in simple terms
3. Duration of treatment
4. Important precautions or side effects
5. When to take each medication

Use simple, patient-friendly language.`

const prescriptionSystemPrompt = "You are a compassionate healthcare assistant explaining prescriptions to patients."

const labReportPrompt = `Analyze this lab report and explain:
1. What tests were performed
2. Key findings and values
3. Which values are normal vs abnormal
4. What abnormal values might indicate
5. General health implications

Use simple language that patients can understand.`

const labReportSystemPrompt = "You are a healthcare assistant explaining lab results to patients in simple terms."

const medicalImagePrompt = `Analyze this medical image and explain:
1. Type of imaging (X-ray, MRI, CT, etc.)
2. Body part or area being examined
3. Visible findings or abnormalities
4. What these findings might mean
5. General observations

Use simple, reassuring language.`

const medicalImageSystemPrompt = "You are a healthcare assistant explaining medical images to patients."

// UnknownCategoryFallback is returned verbatim for unclassifiable documents;
// no model call is made in that case.
const UnknownCategoryFallback = "I couldn't clearly identify this document type. Please upload a clear image of a prescription, lab report, or medical scan."

const chatSystemPrompt = "You are a compassionate AI health companion. Answer questions about medical documents and general health in simple, patient-friendly language. Remind users to consult their doctor for medical decisions."

type explanationTemplate struct {
	prompt string
	system string
}

var explanationTemplates = map[domain.DocumentCategory]explanationTemplate{
	domain.CategoryPrescription: {prompt: prescriptionPrompt, system: prescriptionSystemPrompt},
	domain.CategoryLabReport:    {prompt: labReportPrompt, system: labReportSystemPrompt},
	domain.CategoryMedicalImage: {prompt: medicalImagePrompt, system: medicalImageSystemPrompt},
}

func buildPDFChatPrompt(userInput, pdfText string) string {
	return fmt.Sprintf("%s\n\nDocument content:\n%s", userInput, pdfText)
}

func buildExtractionChatPrompt(userInput string, extraction domain.Extraction) string {
	var b strings.Builder
	b.WriteString(userInput)
	b.WriteString("\n\nExtracted text: ")
	b.WriteString(extraction.RawText)
	b.WriteString("\n")
	if len(extraction.Tables) > 0 {
		b.WriteString("\nTables found:\n")
		for i, table := range extraction.Tables {
			b.WriteString(fmt.Sprintf("Table %d:\n", i+1))
			for _, row := range table {
				b.WriteString(strings.Join(row, " | "))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

func buildCarriedContextPrompt(userInput, documentContext string) string {
	return fmt.Sprintf("%s\n\nBackground - explanation of the patient's most recent document:\n%s", userInput, documentContext)
}

func attachmentMarker(filename, userInput string) string {
	return fmt.Sprintf("[attached: %s]\n\n%s", filename, userInput)
}
