package database

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// seedDepartments is the district office's department register
var seedDepartments = []Department{
	{ID: 1, NameEn: "Administration Department", NameHi: "प्रशासन विभाग"},
	{ID: 2, NameEn: "Development department", NameHi: "विकास विभाग"},
	{ID: 3, NameEn: "District Panchayat Department", NameHi: "जिला पंचायत विभाग"},
	{ID: 4, NameEn: "District Social Welfare Department", NameHi: "जिला समाज कल्याण विभाग"},
	{ID: 5, NameEn: "Animal Husbandry Department", NameHi: "पशुपालन विभाग"},
	{ID: 6, NameEn: "District Industries Department", NameHi: "जिला उद्योग विभाग"},
	{ID: 7, NameEn: "District Education Department", NameHi: "जिला शिक्षा विभाग"},
	{ID: 8, NameEn: "District Health Department", NameHi: "जिला स्वास्थ्य विभाग"},
	{ID: 9, NameEn: "District Agriculture Department", NameHi: "जिला कृषि विभाग"},
	{ID: 10, NameEn: "District Forest Department", NameHi: "जिला वन विभाग"},
	{ID: 11, NameEn: "District Program Department", NameHi: "जिला कार्यक्रम विभाग"},
	{ID: 12, NameEn: "District Food and Marketing Department", NameHi: "जिला खाद्य एवं विपणन विभाग"},
	{ID: 13, NameEn: "District Food Logistics Department", NameHi: "जिला खाद्य रसद विभाग"},
	{ID: 14, NameEn: "Agriculture Department", NameHi: "कृषि विभाग"},
	{ID: 15, NameEn: "Sugarcan Department", NameHi: "गन्ना विभाग"},
	{ID: 16, NameEn: "Agricultural Production Market Committee", NameHi: "कृषि उत्पादन मंडी समिति"},
	{ID: 17, NameEn: "labor department", NameHi: "श्रम विभाग"},
	{ID: 18, NameEn: "Excise Department", NameHi: "आबकारी विभाग"},
	{ID: 19, NameEn: "irrigation department", NameHi: "सिंचाई विभाग"},
	{ID: 20, NameEn: "Public Works Department, Provincial Division", NameHi: "लोक निर्माण विभाग, प्रान्तीय खण्ड"},
	{ID: 21, NameEn: "Public Works Department Construction Division-02", NameHi: "लोक निर्माण विभाग निर्माण खण्ड-02"},
	{ID: 22, NameEn: "Public Works Department Construction Division-03", NameHi: "लोक निर्माण विभाग निर्माण खण्ड-03"},
	{ID: 23, NameEn: "Public Works Department Division-04", NameHi: "लोक निर्माण विभाग खण्ड-04"},
	{ID: 24, NameEn: "Public Works Department NH (National Highway) Division", NameHi: "लोक निर्माण विभाग एन0एच0 खण्ड"},
	{ID: 25, NameEn: "Rural Engineering Department (R.E.D.)", NameHi: "ग्रामीण अभियंत्रण विभाग (आर०ई०डी०)"},
	{ID: 26, NameEn: "Saryu Canal Division", NameHi: "सरयू नहर खण्ड"},
	{ID: 27, NameEn: "Flood Works Division", NameHi: "बाढ़ कार्य खण्ड"},
	{ID: 28, NameEn: "Groundwater Department", NameHi: "भूगर्भ जल विभाग"},
	{ID: 29, NameEn: "Lift Irrigation Division", NameHi: "लिफ्ट सिंचाई खण्ड"},
	{ID: 30, NameEn: "Tubewell Construction Division", NameHi: "नलकूप निर्माण खण्ड"},
	{ID: 31, NameEn: "U.P. Jal Nigam Urban Construction Division", NameHi: "उ0 प्र0 जल निगम नगरीय निर्माण खण्ड"},
	{ID: 32, NameEn: "Minor Irrigation Division Ayodhya", NameHi: "लघु सिंचाई खण्ड अयोध्या"},
	{ID: 33, NameEn: "Electricity Department", NameHi: "विद्युत विभाग"},
	{ID: 34, NameEn: "ITI Department", NameHi: "आई0टी0आई0 विभाग"},
	{ID: 35, NameEn: "State Tax Department", NameHi: "राज्य कर विभाग"},
	{ID: 36, NameEn: "Police Department", NameHi: "पुलिस विभाग"},
	{ID: 37, NameEn: "Education Department", NameHi: "शिक्षा विभाग"},
	{ID: 38, NameEn: "Divisional Transport Department", NameHi: "सम्भागीय परिवहन विभाग"},
	{ID: 39, NameEn: "Uttar Pradesh State Road Transport Department", NameHi: "उ0 प्र0 राज्य सड़क परिवहन विभाग"},
	{ID: 40, NameEn: "Information Department", NameHi: "सूचना विभाग"},
	{ID: 41, NameEn: "Home Guards Department", NameHi: "होम गार्ड्स विभाग"},
	{ID: 42, NameEn: "Health Department", NameHi: "स्वास्थ्य विभाग"},
	{ID: 43, NameEn: "Stamp and Registration Department", NameHi: "स्टाम्प एवं रजिस्ट्रेशन विभाग"},
	{ID: 44, NameEn: "Ayodhya Development Authority Ayodhya", NameHi: "अयोध्या विकास प्राधिकरण अयोध्या"},
	{ID: 45, NameEn: "Public Works Department Electrical & Mechanical Section", NameHi: "लोक निर्माण विभाग विद्युत यांत्रिक खण्ड"},
	{ID: 46, NameEn: "Cooperative Department", NameHi: "सहकारिता विभाग"},
	{ID: 47, NameEn: "UPPCL U.P. Project Corporation Ltd. Construction Unit-11 Ayodhya", NameHi: "यूपीपीसीएल उ0 प्र0 प्रोजेक्ट कारपोरेशन लि0 निर्माण इकाई-11 अयोध्या।"},
	{ID: 48, NameEn: "Other Miscellaneous Departments", NameHi: "अन्य विविध विभाग"},
	{ID: 49, NameEn: "Nagar Nigam Ayodhya", NameHi: "नगर निगम अयोध्या"},
}

// seedSubDepartments maps department id to its officer posts
var seedSubDepartments = map[int][]SubDepartment{
	1: {
		{NameEn: "Chief Development Officer", NameHi: "मुख्य विकास अधिकारी"},
		{NameEn: "Additional District Magistrate (Finance / Revenue) Ayodhya", NameHi: "अपर जिलाधिकारी (वित्त / राजस्व) अयोध्या"},
		{NameEn: "Additional District Magistrate (City), Ayodhya", NameHi: "अपर जिलाधिकारी (नगर), अयोध्या"},
		{NameEn: "Additional District Magistrate (Administration)", NameHi: "अपर जिलाधिकारी (प्रशासन)"},
		{NameEn: "Chief Revenue Officer", NameHi: "मुख्य राजस्व अधिकारी"},
		{NameEn: "Additional District Magistrate (Law & Order)", NameHi: "अपर जिलाधिकारी (कानून एवं व्यवस्था)"},
		{NameEn: "Additional District Magistrate (Land Acquisition)", NameHi: "अपर जिलाधिकारी (भू-अर्जन)"},
		{NameEn: "City Magistrate", NameHi: "नगर मजिस्ट्रेट"},
		{NameEn: "Resident Magistrate", NameHi: "रेजीडेन्ट मजिस्ट्रेट"},
		{NameEn: "Deputy Divisional Consolidation", NameHi: "उप संभागीय चकबन्दी"},
		{NameEn: "Sub Divisional Magistrate Sadar", NameHi: "उप जिलाधिकारी सदर"},
		{NameEn: "Sub-District Magistrate, Bikapur", NameHi: "उप-जिला मजिस्ट्रेट, बिकापुर"},
		{NameEn: "Sub-District Magistrate, Rudauli", NameHi: "उप-जिला मजिस्ट्रेट, रुदौली"},
		{NameEn: "Sub-District Magistrate, Milkipur", NameHi: "उप-जिला मजिस्ट्रेट, मिल्कीपुर"},
		{NameEn: "Sub-District Magistrate, Sohawal", NameHi: "उप-जिला मजिस्ट्रेट, सोहावल"},
		{NameEn: "Assistant Record Officer", NameHi: "सहायक रिकॉर्ड अधिकारी"},
		{NameEn: "Tehsildar Sadar", NameHi: "तहसीलदार सदर"},
		{NameEn: "Tehsildar Bikapur", NameHi: "तहसीलदार बिकापुर"},
		{NameEn: "Tehsildar Rudauli", NameHi: "तहसीलदार रुदौली"},
		{NameEn: "Tehsildar Milkipur", NameHi: "तहसीलदार मिल्कीपुर"},
		{NameEn: "Tehsildar Sohawal", NameHi: "तहसीलदार सोहावल"},
	},
	2: {
		{NameEn: "Development Officer", NameHi: "विकास अधिकारी"},
		{NameEn: "Assistant Development Officer", NameHi: "सहायक विकास अधिकारी"},
		{NameEn: "Block Development Officer", NameHi: "खंड विकास अधिकारी"},
	},
	3: {
		{NameEn: "District Panchayat Officer", NameHi: "जिला पंचायत अधिकारी"},
		{NameEn: "Assistant District Panchayat Officer", NameHi: "सहायक जिला पंचायत अधिकारी"},
	},
	4: {
		{NameEn: "District Social Welfare Officer", NameHi: "जिला समाज कल्याण अधिकारी"},
		{NameEn: "Assistant Social Welfare Officer", NameHi: "सहायक समाज कल्याण अधिकारी"},
	},
	5: {
		{NameEn: "Chief Veterinary Officer", NameHi: "मुख्य पशु चिकित्सा अधिकारी"},
		{NameEn: "District Veterinary Officer", NameHi: "जिला पशु चिकित्सा अधिकारी"},
		{NameEn: "Veterinary Assistant", NameHi: "पशु चिकित्सा सहायक"},
	},
	6: {
		{NameEn: "District Industries Officer", NameHi: "जिला उद्योग अधिकारी"},
		{NameEn: "Assistant Industries Officer", NameHi: "सहायक उद्योग अधिकारी"},
	},
	7: {
		{NameEn: "District Education Officer", NameHi: "जिला शिक्षा अधिकारी"},
		{NameEn: "Assistant Education Officer", NameHi: "सहायक शिक्षा अधिकारी"},
		{NameEn: "Block Education Officer", NameHi: "खंड शिक्षा अधिकारी"},
	},
	8: {
		{NameEn: "Chief Medical Officer", NameHi: "मुख्य चिकित्सा अधिकारी"},
		{NameEn: "District Health Officer", NameHi: "जिला स्वास्थ्य अधिकारी"},
		{NameEn: "Medical Officer", NameHi: "चिकित्सा अधिकारी"},
	},
	9: {
		{NameEn: "District Agriculture Officer", NameHi: "जिला कृषि अधिकारी"},
		{NameEn: "Assistant Agriculture Officer", NameHi: "सहायक कृषि अधिकारी"},
		{NameEn: "Block Agriculture Officer", NameHi: "खंड कृषि अधिकारी"},
	},
	10: {
		{NameEn: "District Forest Officer", NameHi: "जिला वन अधिकारी"},
		{NameEn: "Assistant Forest Officer", NameHi: "सहायक वन अधिकारी"},
		{NameEn: "Range Forest Officer", NameHi: "रेंज वन अधिकारी"},
	},
}

// SeedDepartments upserts the department register and the officer posts of
// each department. Safe to run repeatedly.
func SeedDepartments(db *gorm.DB) error {
	for _, dept := range seedDepartments {
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name_en", "name_hi"}),
		}).Create(&dept).Error; err != nil {
			return fmt.Errorf("failed to seed department %d: %w", dept.ID, err)
		}
	}

	for deptID, subDepts := range seedSubDepartments {
		for _, sd := range subDepts {
			var existing SubDepartment
			err := db.Where("department_id = ? AND name_en = ?", deptID, sd.NameEn).First(&existing).Error
			if err == nil {
				continue
			}
			if err != gorm.ErrRecordNotFound {
				return fmt.Errorf("failed to check sub-department %q: %w", sd.NameEn, err)
			}
			sd.DepartmentID = deptID
			if err := db.Create(&sd).Error; err != nil {
				return fmt.Errorf("failed to seed sub-department %q: %w", sd.NameEn, err)
			}
		}
	}

	return nil
}

// AdminSeedResult reports the outcome of seeding one admin account
type AdminSeedResult struct {
	Email  string `json:"email"`
	Status string `json:"status"`
}

// SeedAdmins creates the given admin accounts with bcrypt-hashed passwords,
// skipping any that already exist
func SeedAdmins(db *gorm.DB, accounts map[string]string) ([]AdminSeedResult, error) {
	results := make([]AdminSeedResult, 0, len(accounts))

	for email, password := range accounts {
		var existing Admin
		err := db.Where("email = ?", email).First(&existing).Error
		if err == nil {
			results = append(results, AdminSeedResult{Email: email, Status: "Already exists"})
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("failed to check admin %s: %w", email, err)
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password for %s: %w", email, err)
		}

		admin := Admin{Email: email, Password: string(hashed)}
		if err := db.Create(&admin).Error; err != nil {
			return nil, fmt.Errorf("failed to create admin %s: %w", email, err)
		}
		results = append(results, AdminSeedResult{Email: email, Status: "Created"})
	}

	return results, nil
}
